package stats

import (
	"context"
	"time"

	"entdash/internal/platform/models"
)

// Repository is the read-only data access contract behind the dashboard.
// There is one method per metric category; handlers depend on nothing else.
type Repository interface {
	Ping(ctx context.Context) error

	EnterpriseStats(ctx context.Context) (*models.EnterpriseStats, error)
	OverviewStats(ctx context.Context) (*models.OverviewStats, error)
	SecurityStats(ctx context.Context) (*models.SecurityStats, error)
	BusinessStats(ctx context.Context) (*models.BusinessStats, error)

	WorkspaceStats(ctx context.Context) (*models.WorkspaceStats, error)
	TopWorkspaces(ctx context.Context, limit int) ([]models.WorkspaceSummary, error)
	WorkspaceGrowth(ctx context.Context, period string) (*models.WorkspaceGrowth, error)

	OrganizationStats(ctx context.Context) (*models.OrganizationStats, error)
	TopOrganizations(ctx context.Context, limit int) ([]models.OrganizationSummary, error)

	UserStats(ctx context.Context) (*models.UserStats, error)
	UserGrowth(ctx context.Context, period string) (*models.UserGrowth, error)
	ActiveUsers(ctx context.Context) (*models.ActiveUsers, error)

	SSOStats(ctx context.Context) (*models.SSOStats, error)
	SSOLoginStats(ctx context.Context, period string) (*models.SSOLoginStats, error)
	SSOProviders(ctx context.Context) ([]models.SSOProviderStat, error)

	AuditActivities(ctx context.Context) ([]models.ActivityEvent, error)
	SecurityEvents(ctx context.Context, period string) (*models.SecurityEvents, error)
	LoginActivity(ctx context.Context) (*models.LoginActivity, error)

	RevenueStats(ctx context.Context, period string) (*models.RevenueStats, error)
	CustomerStats(ctx context.Context) (*models.CustomerStats, error)
	ComplianceStats(ctx context.Context) (*models.ComplianceStats, error)

	SystemHealth(ctx context.Context) (*models.SystemHealth, error)
	PerformanceMetrics(ctx context.Context) (*models.PerformanceMetrics, error)
	ResourceUsage(ctx context.Context) (*models.ResourceUsage, error)

	Analytics(ctx context.Context, period, metrics string) (*models.Analytics, error)
	Trends(ctx context.Context, period, metric string) (*models.Trend, error)
	Comparison(ctx context.Context, q ComparisonQuery) (*models.Comparison, error)

	ListActivity(ctx context.Context, f ActivityFilter) (*models.ActivityPage, error)
	RecentActivity(ctx context.Context, limit int) ([]models.ActivityEvent, error)
}

// WorkspaceSummaryLimit is how many workspaces the workspace summary embeds.
const WorkspaceSummaryLimit = 5

type ComparisonQuery struct {
	CurrentPeriod  string
	PreviousPeriod string
	Metrics        string
}

// ActivityFilter selects a page of the activity log. Empty strings and zero
// times disable the corresponding filter; all active filters must match.
type ActivityFilter struct {
	Type           string
	WorkspaceID    string
	OrganizationID string
	StartDate      time.Time
	EndDate        time.Time
	Limit          int
	Offset         int
}

func (f ActivityFilter) Matches(e models.ActivityEvent) bool {
	if f.Type != "" && e.Category != f.Type {
		return false
	}
	if f.WorkspaceID != "" && e.WorkspaceID != f.WorkspaceID {
		return false
	}
	if f.OrganizationID != "" && e.OrganizationID != f.OrganizationID {
		return false
	}
	if !f.StartDate.IsZero() && e.Timestamp.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && e.Timestamp.After(f.EndDate) {
		return false
	}
	return true
}

// Paginate filters events, then slices [Offset, Offset+Limit) of the result.
// Total is the filtered length before slicing. Event order is preserved.
func Paginate(events []models.ActivityEvent, f ActivityFilter) *models.ActivityPage {
	filtered := make([]models.ActivityEvent, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	page := &models.ActivityPage{
		Activities: []models.ActivityEvent{},
		Total:      len(filtered),
		Limit:      f.Limit,
		Offset:     f.Offset,
	}

	if f.Offset >= len(filtered) || f.Limit <= 0 {
		return page
	}

	end := f.Offset + f.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	page.Activities = append(page.Activities, filtered[f.Offset:end]...)
	return page
}
