package stats

import (
	"context"
	"slices"

	"entdash/internal/platform/models"
)

// StaticRepository serves a Dataset held in memory. Every call returns fresh
// copies, so callers cannot change what later calls see.
type StaticRepository struct {
	data Dataset
}

func NewStaticRepository(data Dataset) *StaticRepository {
	return &StaticRepository{data: data}
}

func (r *StaticRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *StaticRepository) EnterpriseStats(ctx context.Context) (*models.EnterpriseStats, error) {
	v := r.data.Enterprise
	return &v, nil
}

func (r *StaticRepository) OverviewStats(ctx context.Context) (*models.OverviewStats, error) {
	v := r.data.Overview
	return &v, nil
}

func (r *StaticRepository) SecurityStats(ctx context.Context) (*models.SecurityStats, error) {
	v := r.data.Security
	return &v, nil
}

func (r *StaticRepository) BusinessStats(ctx context.Context) (*models.BusinessStats, error) {
	v := r.data.Business
	return &v, nil
}

func (r *StaticRepository) WorkspaceStats(ctx context.Context) (*models.WorkspaceStats, error) {
	v := r.data.Workspaces
	v.TopWorkspaces = head(r.data.WorkspaceList, WorkspaceSummaryLimit)
	return &v, nil
}

func (r *StaticRepository) TopWorkspaces(ctx context.Context, limit int) ([]models.WorkspaceSummary, error) {
	return head(r.data.WorkspaceList, limit), nil
}

func (r *StaticRepository) WorkspaceGrowth(ctx context.Context, period string) (*models.WorkspaceGrowth, error) {
	v := r.data.WorkspaceGrowth
	v.Period = period
	return &v, nil
}

func (r *StaticRepository) OrganizationStats(ctx context.Context) (*models.OrganizationStats, error) {
	v := r.data.Organizations
	return &v, nil
}

func (r *StaticRepository) TopOrganizations(ctx context.Context, limit int) ([]models.OrganizationSummary, error) {
	return head(r.data.OrganizationList, limit), nil
}

func (r *StaticRepository) UserStats(ctx context.Context) (*models.UserStats, error) {
	v := r.data.Users
	return &v, nil
}

func (r *StaticRepository) UserGrowth(ctx context.Context, period string) (*models.UserGrowth, error) {
	v := r.data.UserGrowth
	v.Period = period
	return &v, nil
}

func (r *StaticRepository) ActiveUsers(ctx context.Context) (*models.ActiveUsers, error) {
	v := r.data.ActiveUsers
	return &v, nil
}

func (r *StaticRepository) SSOStats(ctx context.Context) (*models.SSOStats, error) {
	v := r.data.SSO
	v.Providers = ProviderShares(r.data.SSOProviders)
	return &v, nil
}

func (r *StaticRepository) SSOLoginStats(ctx context.Context, period string) (*models.SSOLoginStats, error) {
	v := r.data.SSOLogins
	v.Period = period
	return &v, nil
}

func (r *StaticRepository) SSOProviders(ctx context.Context) ([]models.SSOProviderStat, error) {
	return ProviderShares(r.data.SSOProviders), nil
}

func (r *StaticRepository) AuditActivities(ctx context.Context) ([]models.ActivityEvent, error) {
	return head(r.data.Activity, len(r.data.Activity)), nil
}

func (r *StaticRepository) SecurityEvents(ctx context.Context, period string) (*models.SecurityEvents, error) {
	v := r.data.SecurityEvents
	v.Period = period
	return &v, nil
}

func (r *StaticRepository) LoginActivity(ctx context.Context) (*models.LoginActivity, error) {
	v := r.data.LoginActivity
	return &v, nil
}

func (r *StaticRepository) RevenueStats(ctx context.Context, period string) (*models.RevenueStats, error) {
	v := r.data.Revenue
	v.Period = period
	return &v, nil
}

func (r *StaticRepository) CustomerStats(ctx context.Context) (*models.CustomerStats, error) {
	v := r.data.Customers
	return &v, nil
}

func (r *StaticRepository) ComplianceStats(ctx context.Context) (*models.ComplianceStats, error) {
	v := r.data.Compliance
	return &v, nil
}

func (r *StaticRepository) SystemHealth(ctx context.Context) (*models.SystemHealth, error) {
	v := r.data.Health
	return &v, nil
}

func (r *StaticRepository) PerformanceMetrics(ctx context.Context) (*models.PerformanceMetrics, error) {
	v := r.data.Performance
	return &v, nil
}

func (r *StaticRepository) ResourceUsage(ctx context.Context) (*models.ResourceUsage, error) {
	v := r.data.Resources
	return &v, nil
}

func (r *StaticRepository) Analytics(ctx context.Context, period, metrics string) (*models.Analytics, error) {
	v := r.data.Analytics
	v.Period = period
	v.Metrics = metrics
	return &v, nil
}

func (r *StaticRepository) Trends(ctx context.Context, period, metric string) (*models.Trend, error) {
	v := r.data.Trend
	v.Period = period
	v.Metric = metric
	v.Data = head(r.data.TrendPoints, len(r.data.TrendPoints))
	return &v, nil
}

func (r *StaticRepository) Comparison(ctx context.Context, q ComparisonQuery) (*models.Comparison, error) {
	return &models.Comparison{
		CurrentPeriod:  q.CurrentPeriod,
		PreviousPeriod: q.PreviousPeriod,
		Metrics:        q.Metrics,
		Comparison:     r.data.Comparison,
	}, nil
}

func (r *StaticRepository) ListActivity(ctx context.Context, f ActivityFilter) (*models.ActivityPage, error) {
	return Paginate(r.data.Activity, f), nil
}

func (r *StaticRepository) RecentActivity(ctx context.Context, limit int) ([]models.ActivityEvent, error) {
	return head(r.data.Activity, limit), nil
}

// head copies at most n leading items; the result is never nil.
func head[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	out := slices.Clone(items[:n])
	if out == nil {
		out = []T{}
	}
	return out
}
