package middleware

import (
	"fmt"
	"net/http"

	"entdash/internal/pkg/errors"

	"github.com/rs/zerolog"
)

func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				zerolog.Ctx(r.Context()).Error().
					Str("panic", fmt.Sprint(err)).
					Str("path", r.URL.Path).
					Msg("recovered from panic")
				errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Internal server error")
			}
		}()

		next(w, r)
	}
}
