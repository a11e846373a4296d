package models

import "time"

type EnterpriseStats struct {
	TotalWorkspaces    int    `json:"totalWorkspaces"`
	TotalOrganizations int    `json:"totalOrganizations"`
	TotalUsers         int    `json:"totalUsers"`
	ActiveUsers        int    `json:"activeUsers"`
	SSOEnabled         bool   `json:"ssoEnabled"`
	SSOProviders       int    `json:"ssoProviders"`
	SystemHealth       string `json:"systemHealth"`
	Uptime             string `json:"uptime"`
}

type OverviewStats struct {
	Overview string `json:"overview"`
}

type SecurityStats struct {
	SecurityEvents  int `json:"securityEvents"`
	FailedLogins    int `json:"failedLogins"`
	BlockedAttempts int `json:"blockedAttempts"`
	SecurityScore   int `json:"securityScore"`
}

type BusinessStats struct {
	Revenue      int     `json:"revenue"`
	Customers    int     `json:"customers"`
	Growth       float64 `json:"growth"`
	Satisfaction float64 `json:"satisfaction"`
}

type WorkspaceSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Users      int    `json:"users"`
	Chatflows  int    `json:"chatflows"`
	Executions int    `json:"executions"`
}

type WorkspaceStats struct {
	Total         int                `json:"total"`
	Active        int                `json:"active"`
	Inactive      int                `json:"inactive"`
	Growth        float64            `json:"growth"`
	TopWorkspaces []WorkspaceSummary `json:"topWorkspaces"`
}

type WorkspaceGrowth struct {
	Period          string  `json:"period"`
	Growth          float64 `json:"growth"`
	NewWorkspaces   int     `json:"newWorkspaces"`
	TotalWorkspaces int     `json:"totalWorkspaces"`
}

type OrganizationStats struct {
	TotalOrganizations  int `json:"totalOrganizations"`
	ActiveOrganizations int `json:"activeOrganizations"`
	TotalUsers          int `json:"totalUsers"`
}

type OrganizationSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Users      int    `json:"users"`
	Workspaces int    `json:"workspaces"`
}

type UserStats struct {
	TotalUsers  int `json:"totalUsers"`
	ActiveUsers int `json:"activeUsers"`
	NewUsers    int `json:"newUsers"`
}

type UserGrowth struct {
	Period     string  `json:"period"`
	Growth     float64 `json:"growth"`
	NewUsers   int     `json:"newUsers"`
	TotalUsers int     `json:"totalUsers"`
}

type ActiveUsers struct {
	ActiveUsers  int     `json:"activeUsers"`
	TotalUsers   int     `json:"totalUsers"`
	ActivityRate float64 `json:"activityRate"`
}

// SSOProviderStat.Percentage is the provider's share of all provider logins.
type SSOProviderStat struct {
	Name       string  `json:"name"`
	Logins     int     `json:"logins"`
	Percentage float64 `json:"percentage"`
}

type SSOStats struct {
	TotalLogins      int               `json:"totalLogins"`
	SuccessfulLogins int               `json:"successfulLogins"`
	FailedLogins     int               `json:"failedLogins"`
	SuccessRate      float64           `json:"successRate"`
	Providers        []SSOProviderStat `json:"providers"`
}

type SSOLoginStats struct {
	Period      string  `json:"period"`
	TotalLogins int     `json:"totalLogins"`
	SuccessRate float64 `json:"successRate"`
	UniqueUsers int     `json:"uniqueUsers"`
}

type SecurityEvents struct {
	Period         string `json:"period"`
	Events         int    `json:"events"`
	CriticalEvents int    `json:"criticalEvents"`
	Warnings       int    `json:"warnings"`
}

type LoginActivity struct {
	SuccessfulLogins int     `json:"successfulLogins"`
	FailedLogins     int     `json:"failedLogins"`
	UniqueUsers      int     `json:"uniqueUsers"`
	SuccessRate      float64 `json:"successRate"`
}

type RevenueStats struct {
	Period   string  `json:"period"`
	Revenue  int     `json:"revenue"`
	Growth   float64 `json:"growth"`
	Forecast int     `json:"forecast"`
}

type CustomerStats struct {
	TotalCustomers  int     `json:"totalCustomers"`
	ActiveCustomers int     `json:"activeCustomers"`
	NewCustomers    int     `json:"newCustomers"`
	ChurnRate       float64 `json:"churnRate"`
}

type ComplianceStats struct {
	ComplianceScore int       `json:"complianceScore"`
	PassedAudits    int       `json:"passedAudits"`
	FailedAudits    int       `json:"failedAudits"`
	LastAudit       time.Time `json:"lastAudit"`
}

type SystemHealth struct {
	Status       string    `json:"status"`
	Uptime       string    `json:"uptime"`
	ResponseTime int       `json:"responseTime"`
	LastCheck    time.Time `json:"lastCheck"`
}

type PerformanceMetrics struct {
	ResponseTime int     `json:"responseTime"`
	Throughput   int     `json:"throughput"`
	ErrorRate    float64 `json:"errorRate"`
	CPUUsage     float64 `json:"cpuUsage"`
	MemoryUsage  float64 `json:"memoryUsage"`
}

type ResourceUsage struct {
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Disk    float64 `json:"disk"`
	Network float64 `json:"network"`
}

type Analytics struct {
	Period          string `json:"period"`
	Metrics         string `json:"metrics"`
	TotalExecutions int    `json:"totalExecutions"`
	UniqueUsers     int    `json:"uniqueUsers"`
	AvgResponseTime int    `json:"avgResponseTime"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type Trend struct {
	Period string       `json:"period"`
	Metric string       `json:"metric"`
	Trend  string       `json:"trend"`
	Growth float64      `json:"growth"`
	Data   []TrendPoint `json:"data"`
}

type ComparisonDelta struct {
	Growth      float64 `json:"growth"`
	Improvement float64 `json:"improvement"`
}

// Comparison echoes whichever of the requested periods and metrics were supplied.
type Comparison struct {
	CurrentPeriod  string          `json:"currentPeriod,omitempty"`
	PreviousPeriod string          `json:"previousPeriod,omitempty"`
	Metrics        string          `json:"metrics,omitempty"`
	Comparison     ComparisonDelta `json:"comparison"`
}

// ActivityEvent is an entry of the append-only enterprise activity log.
type ActivityEvent struct {
	ID             int       `json:"id"`
	Category       string    `json:"type"`
	Action         string    `json:"action"`
	Description    string    `json:"description"`
	Timestamp      time.Time `json:"timestamp"`
	ActorName      string    `json:"user"`
	WorkspaceID    string    `json:"workspaceId,omitempty"`
	OrganizationID string    `json:"organizationId,omitempty"`
}

type ActivityPage struct {
	Activities []ActivityEvent `json:"activities"`
	Total      int             `json:"total"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
}
