// Package query reads dashboard query parameters. Malformed values never
// produce an error: they behave as if the parameter were absent.
package query

import (
	"net/http"
	"regexp"
	"strconv"
	"time"
)

var periodPattern = regexp.MustCompile(`^[1-9][0-9]*[hdwmy]$`)

// Limit returns a positive page size, falling back to def and clamping to max when max > 0.
func Limit(r *http.Request, name string, def, max int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || limit < 1 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}

func Offset(r *http.Request, name string) int {
	offset, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// Period returns a reporting window token such as "7d" or "12h".
func Period(r *http.Request, name, def string) string {
	period := r.URL.Query().Get(name)
	if !ValidPeriod(period) {
		return def
	}
	return period
}

func ValidPeriod(token string) bool {
	return periodPattern.MatchString(token)
}

func String(r *http.Request, name, def string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}

// Date parses RFC 3339 or YYYY-MM-DD. A date-only value with endOfDay set
// covers the whole day. The zero time means the parameter was absent or invalid.
func Date(r *http.Request, name string, endOfDay bool) time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}
