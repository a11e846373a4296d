package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
	"entdash/internal/pkg/query"
)

type OrganizationHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewOrganizationHandler(repo stats.Repository, resp *Responder) *OrganizationHandler {
	return &OrganizationHandler{repo: repo, resp: resp}
}

func (h *OrganizationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch organization statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.OrganizationStats(r.Context())
	})(w, r)
}

func (h *OrganizationHandler) Top(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch top organizations", func(r *http.Request) (interface{}, error) {
		limit := query.Limit(r, "limit", defaultTopLimit, h.resp.maxLimit)
		return h.repo.TopOrganizations(r.Context(), limit)
	})(w, r)
}
