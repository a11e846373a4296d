package api

import (
	"context"
	"net/http"
	"strings"

	apiContext "entdash/internal/api/context"
	"entdash/internal/api/handlers"
	"entdash/internal/api/middleware"
	"entdash/internal/pkg/errors"

	"github.com/julienschmidt/httprouter"
)

type Dependencies struct {
	BasePath string

	StatsHandler        *handlers.StatsHandler
	WorkspaceHandler    *handlers.WorkspaceHandler
	OrganizationHandler *handlers.OrganizationHandler
	UserHandler         *handlers.UserHandler
	SSOHandler          *handlers.SSOHandler
	SecurityHandler     *handlers.SecurityHandler
	BusinessHandler     *handlers.BusinessHandler
	SystemHandler       *handlers.SystemHandler
	AnalyticsHandler    *handlers.AnalyticsHandler
	ActivityHandler     *handlers.ActivityHandler
	HealthHandler       *handlers.HealthHandler
	MetricsHandler      *handlers.MetricsHandler

	// AuthMiddleware is nil when authentication is disabled.
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	AllowedRoles   []string
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Route not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed, "Method not allowed")
	})

	// Operational endpoints
	router.GET("/healthz", chain("/healthz", deps.HealthHandler.Check, middleware.Recover, middleware.RequestID))
	router.GET("/metrics", chain("/metrics", deps.MetricsHandler.Export, middleware.Recover))

	// Every dashboard route passes through the same stack, outermost first.
	stack := []func(http.HandlerFunc) http.HandlerFunc{
		middleware.Recover,
		middleware.RequestID,
		middleware.Metrics,
	}
	if deps.AuthMiddleware != nil {
		stack = append(stack, deps.AuthMiddleware.Handle)
	}
	if deps.RateLimiter != nil {
		stack = append(stack, deps.RateLimiter.Handle)
	}
	if deps.AuthMiddleware != nil {
		stack = append(stack, middleware.RequireRole(deps.AllowedRoles...))
	}

	base := strings.TrimRight(deps.BasePath, "/")
	get := func(path string, handler http.HandlerFunc) {
		route := base + path
		router.GET(route, chain(route, handler, stack...))
	}

	// Enterprise statistics
	get("/stats", deps.StatsHandler.Enterprise)
	get("/stats/overview", deps.StatsHandler.Overview)
	get("/stats/security", deps.StatsHandler.Security)
	get("/stats/business", deps.StatsHandler.Business)

	// Workspaces
	get("/workspaces", deps.WorkspaceHandler.Stats)
	get("/workspaces/top", deps.WorkspaceHandler.Top)
	get("/workspaces/growth", deps.WorkspaceHandler.Growth)

	// Organizations
	get("/organizations", deps.OrganizationHandler.Stats)
	get("/organizations/top", deps.OrganizationHandler.Top)

	// Users
	get("/users", deps.UserHandler.Stats)
	get("/users/growth", deps.UserHandler.Growth)
	get("/users/active/count", deps.UserHandler.ActiveCount)

	// SSO
	get("/sso/stats", deps.SSOHandler.Stats)
	get("/sso/logins", deps.SSOHandler.Logins)
	get("/sso/providers", deps.SSOHandler.Providers)

	// Security
	get("/security/stats", deps.SecurityHandler.Stats)
	get("/security/audit", deps.SecurityHandler.Audit)
	get("/security/events", deps.SecurityHandler.Events)
	get("/security/login-activity", deps.SecurityHandler.LoginActivity)

	// Business
	get("/business/stats", deps.BusinessHandler.Stats)
	get("/business/revenue", deps.BusinessHandler.Revenue)
	get("/business/customers", deps.BusinessHandler.Customers)
	get("/business/compliance", deps.BusinessHandler.Compliance)

	// System
	get("/system/health", deps.SystemHandler.Health)
	get("/system/performance", deps.SystemHandler.Performance)
	get("/system/resources", deps.SystemHandler.Resources)

	// Analytics
	get("/analytics", deps.AnalyticsHandler.Overview)
	get("/analytics/trends", deps.AnalyticsHandler.Trends)
	get("/analytics/comparison", deps.AnalyticsHandler.Comparison)

	// Activity
	get("/activity", deps.ActivityHandler.Timeline)
	get("/activity/recent", deps.ActivityHandler.Recent)

	return router
}

// Helper function to chain middlewares
func chain(route string, handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(route, handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(route string, handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		ctx = context.WithValue(ctx, apiContext.Route, route)
		handler(w, r.WithContext(ctx))
	}
}
