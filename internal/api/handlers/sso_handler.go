package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
	"entdash/internal/pkg/query"
)

const defaultWeeklyPeriod = "7d"

type SSOHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewSSOHandler(repo stats.Repository, resp *Responder) *SSOHandler {
	return &SSOHandler{repo: repo, resp: resp}
}

func (h *SSOHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch SSO statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.SSOStats(r.Context())
	})(w, r)
}

func (h *SSOHandler) Logins(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch SSO login statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.SSOLoginStats(r.Context(), query.Period(r, "period", defaultWeeklyPeriod))
	})(w, r)
}

func (h *SSOHandler) Providers(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch SSO provider statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.SSOProviders(r.Context())
	})(w, r)
}
