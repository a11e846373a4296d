package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
	"entdash/internal/pkg/query"
)

type BusinessHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewBusinessHandler(repo stats.Repository, resp *Responder) *BusinessHandler {
	return &BusinessHandler{repo: repo, resp: resp}
}

func (h *BusinessHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch business statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.BusinessStats(r.Context())
	})(w, r)
}

func (h *BusinessHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch revenue statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.RevenueStats(r.Context(), query.Period(r, "period", defaultGrowthPeriod))
	})(w, r)
}

func (h *BusinessHandler) Customers(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch customer statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.CustomerStats(r.Context())
	})(w, r)
}

func (h *BusinessHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch compliance statistics", func(r *http.Request) (interface{}, error) {
		return h.repo.ComplianceStats(r.Context())
	})(w, r)
}
