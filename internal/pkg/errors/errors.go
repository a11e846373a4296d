package errors

import (
	"encoding/json"
	"net/http"
)

// Envelope wraps every dashboard response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// LookupFailure is the single failure kind for statistics lookups. Not-found,
// bad input and internal faults are all reported the same way.
type LookupFailure struct {
	Message string
	Err     error
}

func (e *LookupFailure) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func (e *LookupFailure) Unwrap() error {
	return e.Err
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// WriteFailure reports a failed lookup as a 500 carrying the endpoint message and the raw error text.
func WriteFailure(w http.ResponseWriter, failure *LookupFailure) {
	writeJSON(w, http.StatusInternalServerError, Envelope{
		Success: false,
		Message: failure.Message,
		Error:   failure.Error(),
	})
}

// WriteError is used by middleware and the router for rejections that never reach a lookup.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Envelope{
		Success: false,
		Message: message,
		Error:   code,
	})
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(env)
}
