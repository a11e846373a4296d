package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
	"entdash/internal/pkg/query"
)

type SecurityHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewSecurityHandler(repo stats.Repository, resp *Responder) *SecurityHandler {
	return &SecurityHandler{repo: repo, resp: resp}
}

func (h *SecurityHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch security statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.SecurityStats(r.Context())
	})(w, r)
}

func (h *SecurityHandler) Audit(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch audit activities", func(r *http.Request) (interface{}, error) {
		return h.repo.AuditActivities(r.Context())
	})(w, r)
}

func (h *SecurityHandler) Events(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch security events", func(r *http.Request) (interface{}, error) {
		return h.repo.SecurityEvents(r.Context(), query.Period(r, "period", defaultWeeklyPeriod))
	})(w, r)
}

func (h *SecurityHandler) LoginActivity(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch login activity", func(r *http.Request) (interface{}, error) {
		return h.repo.LoginActivity(r.Context())
	})(w, r)
}
