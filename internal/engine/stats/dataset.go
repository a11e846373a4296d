package stats

import (
	"math"
	"time"

	"entdash/internal/platform/models"
)

// Dataset is a complete set of dashboard figures. Scalar records carry no
// period and no embedded lists; repositories fill those in per request.
type Dataset struct {
	Enterprise models.EnterpriseStats
	Overview   models.OverviewStats
	Security   models.SecurityStats
	Business   models.BusinessStats

	Workspaces      models.WorkspaceStats
	WorkspaceList   []models.WorkspaceSummary
	WorkspaceGrowth models.WorkspaceGrowth

	Organizations    models.OrganizationStats
	OrganizationList []models.OrganizationSummary

	Users       models.UserStats
	UserGrowth  models.UserGrowth
	ActiveUsers models.ActiveUsers

	SSO          models.SSOStats
	SSOProviders []models.SSOProviderStat
	SSOLogins    models.SSOLoginStats

	SecurityEvents models.SecurityEvents
	LoginActivity  models.LoginActivity

	Revenue    models.RevenueStats
	Customers  models.CustomerStats
	Compliance models.ComplianceStats

	Health      models.SystemHealth
	Performance models.PerformanceMetrics
	Resources   models.ResourceUsage

	Analytics   models.Analytics
	Trend       models.Trend
	TrendPoints []models.TrendPoint
	Comparison  models.ComparisonDelta

	Activity []models.ActivityEvent
}

// DefaultDataset returns the built-in dashboard figures. Time-valued fields
// are derived from now, truncated to the second.
func DefaultDataset(now time.Time) Dataset {
	now = now.UTC().Truncate(time.Second)

	return Dataset{
		Enterprise: models.EnterpriseStats{
			TotalWorkspaces:    156,
			TotalOrganizations: 42,
			TotalUsers:         1247,
			ActiveUsers:        892,
			SSOEnabled:         true,
			SSOProviders:       3,
			SystemHealth:       "healthy",
			Uptime:             "99.9%",
		},
		Overview: models.OverviewStats{Overview: "Enterprise overview statistics"},
		Security: models.SecurityStats{
			SecurityEvents:  23,
			FailedLogins:    14,
			BlockedAttempts: 5,
			SecurityScore:   92,
		},
		Business: models.BusinessStats{
			Revenue:      125000,
			Customers:    42,
			Growth:       15.2,
			Satisfaction: 4.8,
		},

		Workspaces: models.WorkspaceStats{Total: 156, Active: 142, Inactive: 14, Growth: 12.5},
		WorkspaceList: []models.WorkspaceSummary{
			{ID: 1, Name: "Marketing Team", Users: 45, Chatflows: 23, Executions: 1250},
			{ID: 2, Name: "Sales Department", Users: 38, Chatflows: 18, Executions: 980},
			{ID: 3, Name: "Customer Support", Users: 52, Chatflows: 31, Executions: 2150},
			{ID: 4, Name: "Development", Users: 67, Chatflows: 45, Executions: 3200},
			{ID: 5, Name: "HR Department", Users: 23, Chatflows: 12, Executions: 450},
		},
		WorkspaceGrowth: models.WorkspaceGrowth{Growth: 12.5, NewWorkspaces: 18, TotalWorkspaces: 156},

		Organizations: models.OrganizationStats{TotalOrganizations: 42, ActiveOrganizations: 38, TotalUsers: 1247},
		OrganizationList: []models.OrganizationSummary{
			{ID: 1, Name: "Acme Corp", Users: 156, Workspaces: 12},
			{ID: 2, Name: "Tech Solutions", Users: 98, Workspaces: 8},
			{ID: 3, Name: "Global Industries", Users: 234, Workspaces: 15},
		},

		Users:       models.UserStats{TotalUsers: 1247, ActiveUsers: 892, NewUsers: 45},
		UserGrowth:  models.UserGrowth{Growth: 8.3, NewUsers: 45, TotalUsers: 1247},
		ActiveUsers: models.ActiveUsers{ActiveUsers: 892, TotalUsers: 1247, ActivityRate: 71.5},

		SSO: models.SSOStats{TotalLogins: 3420, SuccessfulLogins: 3280, FailedLogins: 140, SuccessRate: 95.9},
		SSOProviders: []models.SSOProviderStat{
			{Name: "Google", Logins: 1850},
			{Name: "GitHub", Logins: 980},
			{Name: "Microsoft", Logins: 450},
		},
		SSOLogins: models.SSOLoginStats{TotalLogins: 3420, SuccessRate: 95.9, UniqueUsers: 892},

		SecurityEvents: models.SecurityEvents{Events: 23, CriticalEvents: 2, Warnings: 8},
		LoginActivity:  models.LoginActivity{SuccessfulLogins: 3280, FailedLogins: 140, UniqueUsers: 892, SuccessRate: 95.9},

		Revenue:    models.RevenueStats{Revenue: 125000, Growth: 15.2, Forecast: 145000},
		Customers:  models.CustomerStats{TotalCustomers: 42, ActiveCustomers: 38, NewCustomers: 5, ChurnRate: 2.4},
		Compliance: models.ComplianceStats{ComplianceScore: 94, PassedAudits: 18, FailedAudits: 2, LastAudit: now},

		Health:      models.SystemHealth{Status: "healthy", Uptime: "99.9%", ResponseTime: 145, LastCheck: now},
		Performance: models.PerformanceMetrics{ResponseTime: 145, Throughput: 1250, ErrorRate: 0.8, CPUUsage: 45.2, MemoryUsage: 62.1},
		Resources:   models.ResourceUsage{CPU: 45.2, Memory: 62.1, Disk: 78.5, Network: 34.2},

		Analytics: models.Analytics{TotalExecutions: 12500, UniqueUsers: 892, AvgResponseTime: 145},
		Trend:     models.Trend{Trend: "upward", Growth: 12.5},
		TrendPoints: []models.TrendPoint{
			{Date: "2024-01-01", Value: 800},
			{Date: "2024-01-02", Value: 850},
			{Date: "2024-01-03", Value: 920},
			{Date: "2024-01-04", Value: 980},
			{Date: "2024-01-05", Value: 1050},
		},
		Comparison: models.ComparisonDelta{Growth: 15.2, Improvement: 8.7},

		Activity: []models.ActivityEvent{
			{ID: 1, Category: "workspace", Action: "created", Description: "New workspace created", Timestamp: now, ActorName: "John Doe", WorkspaceID: "1", OrganizationID: "1"},
			{ID: 2, Category: "user", Action: "login", Description: "User logged in via SSO", Timestamp: now.Add(-15 * time.Minute), ActorName: "Jane Smith", OrganizationID: "2"},
			{ID: 3, Category: "organization", Action: "updated", Description: "Organization settings updated", Timestamp: now.Add(-30 * time.Minute), ActorName: "Admin User", OrganizationID: "1"},
			{ID: 4, Category: "sso", Action: "configured", Description: "New SSO provider added", Timestamp: now.Add(-45 * time.Minute), ActorName: "System Admin", OrganizationID: "1"},
			{ID: 5, Category: "security", Action: "audit", Description: "Security audit performed", Timestamp: now.Add(-60 * time.Minute), ActorName: "Security Admin"},
		},
	}
}

// ProviderShares returns a copy of providers with Percentage set to each
// provider's share of the total logins, rounded to one decimal place.
func ProviderShares(providers []models.SSOProviderStat) []models.SSOProviderStat {
	total := 0
	for _, p := range providers {
		total += p.Logins
	}

	out := make([]models.SSOProviderStat, len(providers))
	for i, p := range providers {
		out[i] = p
		out[i].Percentage = 0
		if total > 0 {
			out[i].Percentage = math.Round(float64(p.Logins)*1000/float64(total)) / 10
		}
	}
	return out
}
