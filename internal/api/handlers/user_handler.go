package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
	"entdash/internal/pkg/query"
)

type UserHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewUserHandler(repo stats.Repository, resp *Responder) *UserHandler {
	return &UserHandler{repo: repo, resp: resp}
}

func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch user statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.UserStats(r.Context())
	})(w, r)
}

func (h *UserHandler) Growth(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch user growth", func(r *http.Request) (interface{}, error) {
		return h.repo.UserGrowth(r.Context(), query.Period(r, "period", defaultGrowthPeriod))
	})(w, r)
}

func (h *UserHandler) ActiveCount(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch active users count", func(r *http.Request) (interface{}, error) {
		return h.repo.ActiveUsers(r.Context())
	})(w, r)
}
