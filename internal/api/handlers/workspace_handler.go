package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
	"entdash/internal/pkg/query"
)

const (
	defaultTopLimit     = 5
	defaultGrowthPeriod = "30d"
)

type WorkspaceHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewWorkspaceHandler(repo stats.Repository, resp *Responder) *WorkspaceHandler {
	return &WorkspaceHandler{repo: repo, resp: resp}
}

func (h *WorkspaceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch workspace statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.WorkspaceStats(r.Context())
	})(w, r)
}

// Top returns the first workspaces in backing order.
func (h *WorkspaceHandler) Top(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch top workspaces", func(r *http.Request) (interface{}, error) {
		limit := query.Limit(r, "limit", defaultTopLimit, h.resp.maxLimit)
		return h.repo.TopWorkspaces(r.Context(), limit)
	})(w, r)
}

func (h *WorkspaceHandler) Growth(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch workspace growth", func(r *http.Request) (interface{}, error) {
		return h.repo.WorkspaceGrowth(r.Context(), query.Period(r, "period", defaultGrowthPeriod))
	})(w, r)
}
