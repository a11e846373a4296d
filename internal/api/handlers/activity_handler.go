package handlers

import (
	"net/http"

	"entdash/internal/engine/stats"
	"entdash/internal/pkg/query"
)

const (
	defaultActivityLimit = 50
	defaultRecentLimit   = 10
)

type ActivityHandler struct {
	repo stats.Repository
	resp *Responder
}

func NewActivityHandler(repo stats.Repository, resp *Responder) *ActivityHandler {
	return &ActivityHandler{repo: repo, resp: resp}
}

// Timeline returns one page of the activity log. Filters combine with AND.
func (h *ActivityHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch activity timeline", func(r *http.Request) (interface{}, error) {
		f := stats.ActivityFilter{
			Type:           query.String(r, "type", ""),
			WorkspaceID:    query.String(r, "workspaceId", ""),
			OrganizationID: query.String(r, "organizationId", ""),
			StartDate:      query.Date(r, "startDate", false),
			EndDate:        query.Date(r, "endDate", true),
			Limit:          query.Limit(r, "limit", defaultActivityLimit, h.resp.maxLimit),
			Offset:         query.Offset(r, "offset"),
		}
		return h.repo.ListActivity(r.Context(), f)
	})(w, r)
}

func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	h.resp.Serve("Failed to fetch recent activity", func(r *http.Request) (interface{}, error) {
		limit := query.Limit(r, "limit", defaultRecentLimit, h.resp.maxLimit)
		return h.repo.RecentActivity(r.Context(), limit)
	})(w, r)
}
