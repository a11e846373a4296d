package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apiContext "entdash/internal/api/context"
	"entdash/internal/pkg/errors"
	"entdash/internal/platform/auth"
	"entdash/internal/platform/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errors.Envelope {
	t.Helper()
	var env errors.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func newAuthMiddleware(t *testing.T) (*AuthMiddleware, *auth.TokenService) {
	t.Helper()
	tokens := auth.NewTokenService(config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour})
	hash, err := auth.HashAPIKey("service-key")
	require.NoError(t, err)
	return NewAuthMiddleware(tokens, auth.NewAPIKeyVerifier([]string{hash})), tokens
}

func TestAuthMiddleware(t *testing.T) {
	m, tokens := newAuthMiddleware(t)
	adminToken, err := tokens.GenerateAccessToken("user-1", "org-1", "admin", "", 0)
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantRole   string
	}{
		{"missing header", nil, http.StatusUnauthorized, ""},
		{"wrong scheme", map[string]string{"Authorization": "Basic abc"}, http.StatusUnauthorized, ""},
		{"bad token", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, ""},
		{"valid token", map[string]string{"Authorization": "Bearer " + adminToken}, http.StatusOK, "admin"},
		{"bad api key", map[string]string{"X-API-Key": "wrong"}, http.StatusUnauthorized, ""},
		{"valid api key", map[string]string{"X-API-Key": "service-key"}, http.StatusOK, auth.ServiceRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRole string
			handler := m.Handle(func(w http.ResponseWriter, r *http.Request) {
				gotRole = r.Context().Value(apiContext.Claims).(*auth.Claims).Role
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRole, gotRole)
			if tt.wantStatus == http.StatusUnauthorized {
				env := decodeEnvelope(t, rec)
				assert.False(t, env.Success)
				assert.Equal(t, errors.ErrCodeUnauthorized, env.Error)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole("admin", "owner")(okHandler)

	tests := []struct {
		name       string
		claims     *auth.Claims
		wantStatus int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"admin", &auth.Claims{Role: "admin"}, http.StatusOK},
		{"owner", &auth.Claims{Role: "owner"}, http.StatusOK},
		{"member", &auth.Claims{Role: "member"}, http.StatusForbidden},
		{"service", &auth.Claims{Role: auth.ServiceRole}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), apiContext.Claims, tt.claims))
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRateLimiter_DrainsBucket(t *testing.T) {
	rl := NewRateLimiter(3)
	defer rl.Stop()

	now := time.Now()
	for i := 0; i < 3; i++ {
		assert.True(t, rl.allowAt("ip:1.2.3.4", now), "request %d", i)
	}
	assert.False(t, rl.allowAt("ip:1.2.3.4", now))
	assert.True(t, rl.allowAt("ip:5.6.7.8", now))

	// 3 per minute refills one token every 20 seconds.
	assert.True(t, rl.allowAt("ip:1.2.3.4", now.Add(21*time.Second)))
}

func TestRateLimiter_EvictsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Stop()

	now := time.Now()
	rl.allowAt("ip:1.2.3.4", now)
	rl.evictIdle(now.Add(bucketIdleTimeout + time.Second))

	_, ok := rl.store.Load("ip:1.2.3.4")
	assert.False(t, ok)
}

func TestRateLimiter_Handle(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Stop()
	handler := rl.Handle(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, errors.ErrCodeRateLimitExceeded, decodeEnvelope(t, rec).Error)

	// Authenticated callers get their own bucket.
	authed := req.WithContext(context.WithValue(req.Context(), apiContext.Claims, &auth.Claims{UserID: "user-1"}))
	rec = httptest.NewRecorder()
	handler(rec, authed)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0)
	defer rl.Stop()
	handler := rl.Handle(okHandler)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	var hasLogger bool
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		hasLogger = zerolog.Ctx(r.Context()).GetLevel() != zerolog.Disabled
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	assert.True(t, hasLogger)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecover(t *testing.T) {
	handler := Recover(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errors.ErrCodeInternal, decodeEnvelope(t, rec).Error)
}

func TestMetrics_RecordsStatus(t *testing.T) {
	handler := Metrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), apiContext.Route, "/test"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
