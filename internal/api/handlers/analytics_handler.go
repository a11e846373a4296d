package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
	"entdash/internal/pkg/query"
)

type AnalyticsHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewAnalyticsHandler(repo stats.Repository, resp *Responder) *AnalyticsHandler {
	return &AnalyticsHandler{repo: repo, resp: resp}
}

func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch analytics", func(r *http.Request) (interface{}, error) {
		period := query.Period(r, "period", defaultWeeklyPeriod)
		metrics := query.String(r, "metrics", "all")
		return h.repo.Analytics(r.Context(), period, metrics)
	})(w, r)
}

func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch trends", func(r *http.Request) (interface{}, error) {
		period := query.Period(r, "period", defaultGrowthPeriod)
		metric := query.String(r, "metric", "users")
		return h.repo.Trends(r.Context(), period, metric)
	})(w, r)
}

// Comparison echoes only the parameters the caller supplied.
func (h *AnalyticsHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch comparison data", func(r *http.Request) (interface{}, error) {
		q := stats.ComparisonQuery{
			CurrentPeriod:  query.String(r, "currentPeriod", ""),
			PreviousPeriod: query.String(r, "previousPeriod", ""),
			Metrics:        query.String(r, "metrics", ""),
		}
		return h.repo.Comparison(r.Context(), q)
	})(w, r)
}
