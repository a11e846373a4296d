package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"entdash/internal/platform/models"
)

// Snapshot categories stored in metric_snapshots.
const (
	snapshotEnterprise      = "enterprise"
	snapshotOverview        = "overview"
	snapshotSecurity        = "security"
	snapshotBusiness        = "business"
	snapshotWorkspaces      = "workspaces"
	snapshotWorkspaceGrowth = "workspace_growth"
	snapshotOrganizations   = "organizations"
	snapshotUsers           = "users"
	snapshotUserGrowth      = "user_growth"
	snapshotActiveUsers     = "active_users"
	snapshotSSO             = "sso"
	snapshotSSOLogins       = "sso_logins"
	snapshotSecurityEvents  = "security_events"
	snapshotLoginActivity   = "login_activity"
	snapshotRevenue         = "revenue"
	snapshotCustomers       = "customers"
	snapshotCompliance      = "compliance"
	snapshotHealth          = "system_health"
	snapshotPerformance     = "performance"
	snapshotResources       = "resources"
	snapshotAnalytics       = "analytics"
	snapshotTrend           = "trend"
	snapshotComparison      = "comparison"
)

// SQLRepository reads dashboard figures from the SQLite store. Scalar
// categories are JSON snapshots; lists are ordered by their position column.
type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func loadSnapshot[T any](ctx context.Context, db *sql.DB, category string) (*T, error) {
	var payload string
	err := db.QueryRowContext(ctx, `SELECT payload FROM metric_snapshots WHERE category = ?`, category).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no %s snapshot recorded", category)
		}
		return nil, err
	}

	v := new(T)
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return nil, fmt.Errorf("corrupt %s snapshot: %w", category, err)
	}
	return v, nil
}

func (r *SQLRepository) EnterpriseStats(ctx context.Context) (*models.EnterpriseStats, error) {
	return loadSnapshot[models.EnterpriseStats](ctx, r.db, snapshotEnterprise)
}

func (r *SQLRepository) OverviewStats(ctx context.Context) (*models.OverviewStats, error) {
	return loadSnapshot[models.OverviewStats](ctx, r.db, snapshotOverview)
}

func (r *SQLRepository) SecurityStats(ctx context.Context) (*models.SecurityStats, error) {
	return loadSnapshot[models.SecurityStats](ctx, r.db, snapshotSecurity)
}

func (r *SQLRepository) BusinessStats(ctx context.Context) (*models.BusinessStats, error) {
	return loadSnapshot[models.BusinessStats](ctx, r.db, snapshotBusiness)
}

func (r *SQLRepository) WorkspaceStats(ctx context.Context) (*models.WorkspaceStats, error) {
	v, err := loadSnapshot[models.WorkspaceStats](ctx, r.db, snapshotWorkspaces)
	if err != nil {
		return nil, err
	}
	v.TopWorkspaces, err = r.TopWorkspaces(ctx, WorkspaceSummaryLimit)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *SQLRepository) TopWorkspaces(ctx context.Context, limit int) ([]models.WorkspaceSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, users, chatflows, executions
		FROM workspaces
		ORDER BY position
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workspaces := []models.WorkspaceSummary{}
	for rows.Next() {
		var w models.WorkspaceSummary
		if err := rows.Scan(&w.ID, &w.Name, &w.Users, &w.Chatflows, &w.Executions); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, w)
	}
	return workspaces, rows.Err()
}

func (r *SQLRepository) WorkspaceGrowth(ctx context.Context, period string) (*models.WorkspaceGrowth, error) {
	v, err := loadSnapshot[models.WorkspaceGrowth](ctx, r.db, snapshotWorkspaceGrowth)
	if err != nil {
		return nil, err
	}
	v.Period = period
	return v, nil
}

func (r *SQLRepository) OrganizationStats(ctx context.Context) (*models.OrganizationStats, error) {
	return loadSnapshot[models.OrganizationStats](ctx, r.db, snapshotOrganizations)
}

func (r *SQLRepository) TopOrganizations(ctx context.Context, limit int) ([]models.OrganizationSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, users, workspaces
		FROM organizations
		ORDER BY position
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []models.OrganizationSummary{}
	for rows.Next() {
		var o models.OrganizationSummary
		if err := rows.Scan(&o.ID, &o.Name, &o.Users, &o.Workspaces); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *SQLRepository) UserStats(ctx context.Context) (*models.UserStats, error) {
	return loadSnapshot[models.UserStats](ctx, r.db, snapshotUsers)
}

func (r *SQLRepository) UserGrowth(ctx context.Context, period string) (*models.UserGrowth, error) {
	v, err := loadSnapshot[models.UserGrowth](ctx, r.db, snapshotUserGrowth)
	if err != nil {
		return nil, err
	}
	v.Period = period
	return v, nil
}

func (r *SQLRepository) ActiveUsers(ctx context.Context) (*models.ActiveUsers, error) {
	return loadSnapshot[models.ActiveUsers](ctx, r.db, snapshotActiveUsers)
}

func (r *SQLRepository) SSOStats(ctx context.Context) (*models.SSOStats, error) {
	v, err := loadSnapshot[models.SSOStats](ctx, r.db, snapshotSSO)
	if err != nil {
		return nil, err
	}
	v.Providers, err = r.SSOProviders(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *SQLRepository) SSOLoginStats(ctx context.Context, period string) (*models.SSOLoginStats, error) {
	v, err := loadSnapshot[models.SSOLoginStats](ctx, r.db, snapshotSSOLogins)
	if err != nil {
		return nil, err
	}
	v.Period = period
	return v, nil
}

func (r *SQLRepository) SSOProviders(ctx context.Context) ([]models.SSOProviderStat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, logins FROM sso_providers ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := []models.SSOProviderStat{}
	for rows.Next() {
		var p models.SSOProviderStat
		if err := rows.Scan(&p.Name, &p.Logins); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ProviderShares(providers), nil
}

func (r *SQLRepository) AuditActivities(ctx context.Context) ([]models.ActivityEvent, error) {
	return r.queryActivity(ctx, `ORDER BY position`)
}

func (r *SQLRepository) SecurityEvents(ctx context.Context, period string) (*models.SecurityEvents, error) {
	v, err := loadSnapshot[models.SecurityEvents](ctx, r.db, snapshotSecurityEvents)
	if err != nil {
		return nil, err
	}
	v.Period = period
	return v, nil
}

func (r *SQLRepository) LoginActivity(ctx context.Context) (*models.LoginActivity, error) {
	return loadSnapshot[models.LoginActivity](ctx, r.db, snapshotLoginActivity)
}

func (r *SQLRepository) RevenueStats(ctx context.Context, period string) (*models.RevenueStats, error) {
	v, err := loadSnapshot[models.RevenueStats](ctx, r.db, snapshotRevenue)
	if err != nil {
		return nil, err
	}
	v.Period = period
	return v, nil
}

func (r *SQLRepository) CustomerStats(ctx context.Context) (*models.CustomerStats, error) {
	return loadSnapshot[models.CustomerStats](ctx, r.db, snapshotCustomers)
}

func (r *SQLRepository) ComplianceStats(ctx context.Context) (*models.ComplianceStats, error) {
	return loadSnapshot[models.ComplianceStats](ctx, r.db, snapshotCompliance)
}

func (r *SQLRepository) SystemHealth(ctx context.Context) (*models.SystemHealth, error) {
	return loadSnapshot[models.SystemHealth](ctx, r.db, snapshotHealth)
}

func (r *SQLRepository) PerformanceMetrics(ctx context.Context) (*models.PerformanceMetrics, error) {
	return loadSnapshot[models.PerformanceMetrics](ctx, r.db, snapshotPerformance)
}

func (r *SQLRepository) ResourceUsage(ctx context.Context) (*models.ResourceUsage, error) {
	return loadSnapshot[models.ResourceUsage](ctx, r.db, snapshotResources)
}

func (r *SQLRepository) Analytics(ctx context.Context, period, metrics string) (*models.Analytics, error) {
	v, err := loadSnapshot[models.Analytics](ctx, r.db, snapshotAnalytics)
	if err != nil {
		return nil, err
	}
	v.Period = period
	v.Metrics = metrics
	return v, nil
}

func (r *SQLRepository) Trends(ctx context.Context, period, metric string) (*models.Trend, error) {
	v, err := loadSnapshot[models.Trend](ctx, r.db, snapshotTrend)
	if err != nil {
		return nil, err
	}
	v.Period = period
	v.Metric = metric

	rows, err := r.db.QueryContext(ctx, `SELECT date, value FROM trend_points ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	v.Data = []models.TrendPoint{}
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, err
		}
		v.Data = append(v.Data, p)
	}
	return v, rows.Err()
}

func (r *SQLRepository) Comparison(ctx context.Context, q ComparisonQuery) (*models.Comparison, error) {
	delta, err := loadSnapshot[models.ComparisonDelta](ctx, r.db, snapshotComparison)
	if err != nil {
		return nil, err
	}
	return &models.Comparison{
		CurrentPeriod:  q.CurrentPeriod,
		PreviousPeriod: q.PreviousPeriod,
		Metrics:        q.Metrics,
		Comparison:     *delta,
	}, nil
}

func activityWhere(f ActivityFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.Type != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Type)
	}
	if f.WorkspaceID != "" {
		clauses = append(clauses, "workspace_id = ?")
		args = append(args, f.WorkspaceID)
	}
	if f.OrganizationID != "" {
		clauses = append(clauses, "organization_id = ?")
		args = append(args, f.OrganizationID)
	}
	if !f.StartDate.IsZero() {
		clauses = append(clauses, "occurred_at >= ?")
		args = append(args, f.StartDate.UnixMilli())
	}
	if !f.EndDate.IsZero() {
		clauses = append(clauses, "occurred_at <= ?")
		args = append(args, f.EndDate.UnixMilli())
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (r *SQLRepository) ListActivity(ctx context.Context, f ActivityFilter) (*models.ActivityPage, error) {
	where, args := activityWhere(f)

	page := &models.ActivityPage{Limit: f.Limit, Offset: f.Offset}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_events `+where, args...).Scan(&page.Total); err != nil {
		return nil, err
	}

	var err error
	page.Activities, err = r.queryActivity(ctx, where+` ORDER BY position LIMIT ? OFFSET ?`, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (r *SQLRepository) RecentActivity(ctx context.Context, limit int) ([]models.ActivityEvent, error) {
	return r.queryActivity(ctx, `ORDER BY position LIMIT ?`, limit)
}

func (r *SQLRepository) queryActivity(ctx context.Context, tail string, args ...interface{}) ([]models.ActivityEvent, error) {
	query := `
		SELECT id, category, action, description, occurred_at, actor_name, workspace_id, organization_id
		FROM activity_events ` + tail

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.ActivityEvent{}
	for rows.Next() {
		var e models.ActivityEvent
		var occurredAt int64
		var workspaceID, organizationID sql.NullString
		if err := rows.Scan(&e.ID, &e.Category, &e.Action, &e.Description, &occurredAt, &e.ActorName, &workspaceID, &organizationID); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(occurredAt).UTC()
		e.WorkspaceID = workspaceID.String
		e.OrganizationID = organizationID.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// IsEmpty reports whether no snapshots have been recorded yet.
func (r *SQLRepository) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM metric_snapshots`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// Seed replaces the stored figures with data in a single transaction.
func (r *SQLRepository) Seed(ctx context.Context, data Dataset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"metric_snapshots", "workspaces", "organizations", "sso_providers", "trend_points", "activity_events"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	workspaces := data.Workspaces
	workspaces.TopWorkspaces = nil
	sso := data.SSO
	sso.Providers = nil
	trend := data.Trend
	trend.Data = nil

	snapshots := map[string]interface{}{
		snapshotEnterprise:      data.Enterprise,
		snapshotOverview:        data.Overview,
		snapshotSecurity:        data.Security,
		snapshotBusiness:        data.Business,
		snapshotWorkspaces:      workspaces,
		snapshotWorkspaceGrowth: data.WorkspaceGrowth,
		snapshotOrganizations:   data.Organizations,
		snapshotUsers:           data.Users,
		snapshotUserGrowth:      data.UserGrowth,
		snapshotActiveUsers:     data.ActiveUsers,
		snapshotSSO:             sso,
		snapshotSSOLogins:       data.SSOLogins,
		snapshotSecurityEvents:  data.SecurityEvents,
		snapshotLoginActivity:   data.LoginActivity,
		snapshotRevenue:         data.Revenue,
		snapshotCustomers:       data.Customers,
		snapshotCompliance:      data.Compliance,
		snapshotHealth:          data.Health,
		snapshotPerformance:     data.Performance,
		snapshotResources:       data.Resources,
		snapshotAnalytics:       data.Analytics,
		snapshotTrend:           trend,
		snapshotComparison:      data.Comparison,
	}

	now := time.Now().Unix()
	for category, value := range snapshots {
		payload, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO metric_snapshots (category, payload, updated_at) VALUES (?, ?, ?)`, category, string(payload), now); err != nil {
			return fmt.Errorf("failed to store %s snapshot: %w", category, err)
		}
	}

	for i, w := range data.WorkspaceList {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO workspaces (id, name, users, chatflows, executions, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, w.ID, w.Name, w.Users, w.Chatflows, w.Executions, i); err != nil {
			return err
		}
	}

	for i, o := range data.OrganizationList {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO organizations (id, name, users, workspaces, position)
			VALUES (?, ?, ?, ?, ?)
		`, o.ID, o.Name, o.Users, o.Workspaces, i); err != nil {
			return err
		}
	}

	for i, p := range data.SSOProviders {
		if _, err := tx.ExecContext(ctx, `INSERT INTO sso_providers (name, logins, position) VALUES (?, ?, ?)`, p.Name, p.Logins, i); err != nil {
			return err
		}
	}

	for i, p := range data.TrendPoints {
		if _, err := tx.ExecContext(ctx, `INSERT INTO trend_points (position, date, value) VALUES (?, ?, ?)`, i, p.Date, p.Value); err != nil {
			return err
		}
	}

	for i, e := range data.Activity {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO activity_events (id, category, action, description, occurred_at, actor_name, workspace_id, organization_id, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.Category, e.Action, e.Description, e.Timestamp.UnixMilli(), e.ActorName, nullable(e.WorkspaceID), nullable(e.OrganizationID), i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
