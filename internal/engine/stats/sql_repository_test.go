package stats

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"entdash/internal/platform/config"
	"entdash/internal/platform/database"
	"entdash/internal/platform/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSeededDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = database.Migrate(context.Background(), db)
	require.NoError(t, err)

	require.NoError(t, NewSQLRepository(db).Seed(context.Background(), DefaultDataset(fixedNow)))
	return db
}

func TestSQLRepository_MatchesStatic(t *testing.T) {
	ctx := context.Background()
	sqlRepo := NewSQLRepository(setupSeededDB(t))
	static := NewStaticRepository(DefaultDataset(fixedNow))

	check := func(name string, want, got interface{}, err error) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	{
		want, _ := static.EnterpriseStats(ctx)
		got, err := sqlRepo.EnterpriseStats(ctx)
		check("enterprise", want, got, err)
	}
	{
		want, _ := static.OverviewStats(ctx)
		got, err := sqlRepo.OverviewStats(ctx)
		check("overview", want, got, err)
	}
	{
		want, _ := static.SecurityStats(ctx)
		got, err := sqlRepo.SecurityStats(ctx)
		check("security", want, got, err)
	}
	{
		want, _ := static.BusinessStats(ctx)
		got, err := sqlRepo.BusinessStats(ctx)
		check("business", want, got, err)
	}
	{
		want, _ := static.WorkspaceStats(ctx)
		got, err := sqlRepo.WorkspaceStats(ctx)
		check("workspaces", want, got, err)
	}
	{
		want, _ := static.TopWorkspaces(ctx, 3)
		got, err := sqlRepo.TopWorkspaces(ctx, 3)
		check("top workspaces", want, got, err)
	}
	{
		want, _ := static.WorkspaceGrowth(ctx, "30d")
		got, err := sqlRepo.WorkspaceGrowth(ctx, "30d")
		check("workspace growth", want, got, err)
	}
	{
		want, _ := static.OrganizationStats(ctx)
		got, err := sqlRepo.OrganizationStats(ctx)
		check("organizations", want, got, err)
	}
	{
		want, _ := static.TopOrganizations(ctx, 5)
		got, err := sqlRepo.TopOrganizations(ctx, 5)
		check("top organizations", want, got, err)
	}
	{
		want, _ := static.UserStats(ctx)
		got, err := sqlRepo.UserStats(ctx)
		check("users", want, got, err)
	}
	{
		want, _ := static.UserGrowth(ctx, "1y")
		got, err := sqlRepo.UserGrowth(ctx, "1y")
		check("user growth", want, got, err)
	}
	{
		want, _ := static.ActiveUsers(ctx)
		got, err := sqlRepo.ActiveUsers(ctx)
		check("active users", want, got, err)
	}
	{
		want, _ := static.SSOStats(ctx)
		got, err := sqlRepo.SSOStats(ctx)
		check("sso", want, got, err)
	}
	{
		want, _ := static.SSOLoginStats(ctx, "7d")
		got, err := sqlRepo.SSOLoginStats(ctx, "7d")
		check("sso logins", want, got, err)
	}
	{
		want, _ := static.SSOProviders(ctx)
		got, err := sqlRepo.SSOProviders(ctx)
		check("sso providers", want, got, err)
	}
	{
		want, _ := static.AuditActivities(ctx)
		got, err := sqlRepo.AuditActivities(ctx)
		check("audit", want, got, err)
	}
	{
		want, _ := static.SecurityEvents(ctx, "24h")
		got, err := sqlRepo.SecurityEvents(ctx, "24h")
		check("security events", want, got, err)
	}
	{
		want, _ := static.LoginActivity(ctx)
		got, err := sqlRepo.LoginActivity(ctx)
		check("login activity", want, got, err)
	}
	{
		want, _ := static.RevenueStats(ctx, "30d")
		got, err := sqlRepo.RevenueStats(ctx, "30d")
		check("revenue", want, got, err)
	}
	{
		want, _ := static.CustomerStats(ctx)
		got, err := sqlRepo.CustomerStats(ctx)
		check("customers", want, got, err)
	}
	{
		want, _ := static.ComplianceStats(ctx)
		got, err := sqlRepo.ComplianceStats(ctx)
		check("compliance", want, got, err)
	}
	{
		want, _ := static.SystemHealth(ctx)
		got, err := sqlRepo.SystemHealth(ctx)
		check("system health", want, got, err)
	}
	{
		want, _ := static.PerformanceMetrics(ctx)
		got, err := sqlRepo.PerformanceMetrics(ctx)
		check("performance", want, got, err)
	}
	{
		want, _ := static.ResourceUsage(ctx)
		got, err := sqlRepo.ResourceUsage(ctx)
		check("resources", want, got, err)
	}
	{
		want, _ := static.Analytics(ctx, "7d", "all")
		got, err := sqlRepo.Analytics(ctx, "7d", "all")
		check("analytics", want, got, err)
	}
	{
		want, _ := static.Trends(ctx, "30d", "users")
		got, err := sqlRepo.Trends(ctx, "30d", "users")
		check("trends", want, got, err)
	}
	{
		q := ComparisonQuery{CurrentPeriod: "30d", PreviousPeriod: "60d", Metrics: "users"}
		want, _ := static.Comparison(ctx, q)
		got, err := sqlRepo.Comparison(ctx, q)
		check("comparison", want, got, err)
	}
	{
		want, _ := static.RecentActivity(ctx, 10)
		got, err := sqlRepo.RecentActivity(ctx, 10)
		check("recent activity", want, got, err)
	}
}

func TestSQLRepository_ListActivity(t *testing.T) {
	ctx := context.Background()
	sqlRepo := NewSQLRepository(setupSeededDB(t))
	static := NewStaticRepository(DefaultDataset(fixedNow))

	filters := map[string]ActivityFilter{
		"all":          {Limit: 50},
		"page":         {Limit: 2, Offset: 1},
		"past end":     {Limit: 5, Offset: 20},
		"type":         {Type: "user", Limit: 50},
		"organization": {OrganizationID: "1", Limit: 2},
		"workspace":    {WorkspaceID: "1", Limit: 50},
		"date range":   {StartDate: fixedNow.Add(-50 * time.Minute), EndDate: fixedNow.Add(-10 * time.Minute), Limit: 50},
	}

	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			want, err := static.ListActivity(ctx, f)
			require.NoError(t, err)
			got, err := sqlRepo.ListActivity(ctx, f)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSQLRepository_IsEmptyAndReseed(t *testing.T) {
	ctx := context.Background()

	db, err := database.Open(config.DatabaseConfig{URL: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	_, err = database.Migrate(ctx, db)
	require.NoError(t, err)

	repo := NewSQLRepository(db)
	empty, err := repo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	_, err = repo.EnterpriseStats(ctx)
	assert.EqualError(t, err, "no enterprise snapshot recorded")

	require.NoError(t, repo.Seed(ctx, DefaultDataset(fixedNow)))
	require.NoError(t, repo.Seed(ctx, DefaultDataset(fixedNow)))

	empty, err = repo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	page, err := repo.ListActivity(ctx, ActivityFilter{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
}

func TestSQLRepository_TrendKeepsDatasetOrder(t *testing.T) {
	ctx := context.Background()
	db := setupSeededDB(t)
	repo := NewSQLRepository(db)

	data := DefaultDataset(fixedNow)
	data.TrendPoints = []models.TrendPoint{
		{Date: "2024-01-03", Value: 920},
		{Date: "2024-01-01", Value: 800},
		{Date: "2024-01-03", Value: 925},
		{Date: "2024-01-02", Value: 850},
	}
	require.NoError(t, repo.Seed(ctx, data))

	want, _ := NewStaticRepository(data).Trends(ctx, "30d", "users")
	got, err := repo.Trends(ctx, "30d", "users")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "2024-01-03", got.Data[0].Date)
	assert.Equal(t, 925, got.Data[2].Value)
}

func TestSQLRepository_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM metric_snapshots WHERE category = ?`)).
		WithArgs("enterprise").
		WillReturnError(sql.ErrConnDone)

	_, err = NewSQLRepository(db).EnterpriseStats(context.Background())
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_CorruptSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM metric_snapshots WHERE category = ?`)).
		WithArgs("system_health").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow("{not json"))

	_, err = NewSQLRepository(db).SystemHealth(context.Background())
	assert.ErrorContains(t, err, "corrupt system_health snapshot")
}
