package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"entdash/internal/pkg/errors"

	"github.com/rs/zerolog"
)

// Lookup fetches the payload for a single dashboard endpoint.
type Lookup func(r *http.Request) (interface{}, error)

// Responder turns lookups into handlers that share one response contract:
// a success envelope on success, otherwise a logged 500 failure envelope.
type Responder struct {
	timeout  time.Duration
	maxLimit int
}

// NewResponder applies timeout to every lookup. maxLimit caps page sizes
// requested through the limit parameter.
func NewResponder(timeout time.Duration, maxLimit int) *Responder {
	return &Responder{timeout: timeout, maxLimit: maxLimit}
}

func (resp *Responder) Serve(message string, lookup Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resp.timeout > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), resp.timeout)
			defer cancel()
			r = r.WithContext(ctx)
		}

		data, err := runLookup(r, lookup)
		if err != nil {
			failure := &errors.LookupFailure{Message: message, Err: err}
			zerolog.Ctx(r.Context()).Error().
				Err(err).
				Str("path", r.URL.Path).
				Msg(message)
			errors.WriteFailure(w, failure)
			return
		}

		errors.WriteSuccess(w, data)
	}
}

func runLookup(r *http.Request, lookup Lookup) (data interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return lookup(r)
}
