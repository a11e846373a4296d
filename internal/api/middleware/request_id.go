package middleware

import (
	"context"
	"net/http"

	apiContext "entdash/internal/api/context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestID honours an incoming X-Request-ID or generates one, echoes it on
// the response and attaches a logger carrying it to the request context.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := log.With().Str("request_id", id).Logger()
		ctx := context.WithValue(r.Context(), apiContext.RequestID, id)
		ctx = logger.WithContext(ctx)

		next(w, r.WithContext(ctx))
	}
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(apiContext.RequestID).(string); ok {
		return id
	}
	return ""
}
