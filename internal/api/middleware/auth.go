package middleware

import (
	"context"
	"net/http"
	"strings"

	apiContext "entdash/internal/api/context"
	"entdash/internal/pkg/errors"
	"entdash/internal/platform/auth"

	"github.com/rs/zerolog"
)

const apiKeyHeader = "X-API-Key"

type AuthMiddleware struct {
	tokenSvc *auth.TokenService
	keys     *auth.APIKeyVerifier
}

func NewAuthMiddleware(tokenSvc *auth.TokenService, keys *auth.APIKeyVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, keys: keys}
}

// Handle accepts either a bearer JWT or an API key. API key callers get
// claims with the service role.
func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var claims *auth.Claims

		if key := r.Header.Get(apiKeyHeader); key != "" {
			if m.keys == nil || !m.keys.Verify(key) {
				errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid API key")
				return
			}
			claims = &auth.Claims{UserID: "api-key", Role: auth.ServiceRole}
		} else {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid authorization header format")
				return
			}

			var err error
			claims, err = m.tokenSvc.ValidateToken(parts[1])
			if err != nil {
				zerolog.Ctx(r.Context()).Debug().Err(err).Msg("rejected bearer token")
				errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid or expired token")
				return
			}
		}

		ctx := context.WithValue(r.Context(), apiContext.Claims, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole rejects callers whose role is not listed. The service role
// used by API keys is always allowed.
func RequireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(apiContext.Claims).(*auth.Claims)
			if !ok || claims == nil {
				errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Authentication required")
				return
			}

			allowed := claims.Role == auth.ServiceRole
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Insufficient permissions")
				return
			}

			next(w, r)
		}
	}
}
