package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
)

type StatsHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewStatsHandler(repo stats.Repository, resp *Responder) *StatsHandler {
	return &StatsHandler{repo: repo, resp: resp}
}

func (h *StatsHandler) Enterprise(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch enterprise statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.EnterpriseStats(r.Context())
	})(w, r)
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch overview statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.OverviewStats(r.Context())
	})(w, r)
}

func (h *StatsHandler) Security(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch security statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.SecurityStats(r.Context())
	})(w, r)
}

func (h *StatsHandler) Business(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch business statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.BusinessStats(r.Context())
	})(w, r)
}
