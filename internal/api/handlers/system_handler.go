package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
)

type SystemHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewSystemHandler(repo stats.Repository, resp *Responder) *SystemHandler {
	return &SystemHandler{repo: repo, resp: resp}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch system health", func(r *http.Request) (interface{}, error) {
		return h.repo.SystemHealth(r.Context())
	})(w, r)
}

func (h *SystemHandler) Performance(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch performance metrics", func(r *http.Request) (interface{}, error) {
		return h.repo.PerformanceMetrics(r.Context())
	})(w, r)
}

func (h *SystemHandler) Resources(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch resource usage", func(r *http.Request) (interface{}, error) {
		return h.repo.ResourceUsage(r.Context())
	})(w, r)
}
