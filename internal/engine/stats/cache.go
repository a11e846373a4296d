package stats

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"entdash/internal/platform/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "entdash",
			Subsystem: "stats_cache",
			Name:      "lookups_total",
			Help:      "Statistics cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	cacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "entdash",
			Subsystem: "stats_cache",
			Name:      "entries",
			Help:      "Entries currently held by the statistics cache",
		},
	)
)

type cacheEntry struct {
	value    interface{}
	cachedAt time.Time
}

// CachedRepository is a read-through TTL cache in front of another
// Repository. Failed lookups are never cached. Callers get copies of cached
// values; nested slices are shared and must be treated as read-only.
type CachedRepository struct {
	next       Repository
	ttl        time.Duration
	maxEntries int
	store      sync.Map // map[string]*cacheEntry
	size       atomic.Int64
	now        func() time.Time
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewCachedRepository wraps next. A non-positive ttl disables caching; a
// non-positive maxEntries leaves the entry count uncapped. Expired entries
// are swept every ttl until Stop is called.
func NewCachedRepository(next Repository, ttl time.Duration, maxEntries int) *CachedRepository {
	c := &CachedRepository{
		next:       next,
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	if ttl > 0 {
		go c.sweepLoop()
	}
	return c
}

// Stop ends the background sweep.
func (c *CachedRepository) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *CachedRepository) sweepLoop() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired(c.now())
		}
	}
}

func (c *CachedRepository) expired(entry *cacheEntry, now time.Time) bool {
	return now.Sub(entry.cachedAt) > c.ttl
}

// evictExpired removes every entry older than the TTL and returns how many went.
func (c *CachedRepository) evictExpired(now time.Time) int {
	evicted := 0
	c.store.Range(func(key, val interface{}) bool {
		if c.expired(val.(*cacheEntry), now) && c.remove(key, val) {
			evicted++
		}
		return true
	})
	return evicted
}

// remove deletes key only while it still holds val, so a fresh entry stored
// concurrently survives.
func (c *CachedRepository) remove(key, val interface{}) bool {
	if !c.store.CompareAndDelete(key, val) {
		return false
	}
	c.size.Add(-1)
	cacheEntries.Dec()
	return true
}

func (c *CachedRepository) get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		return nil, false
	}

	entry := val.(*cacheEntry)
	if c.expired(entry, c.now()) {
		c.remove(key, val)
		return nil, false
	}

	return entry.value, true
}

// set stores value unless the cache is full of live entries. The cap is soft:
// concurrent writers can overshoot it by a few entries.
func (c *CachedRepository) set(key string, value interface{}) {
	if _, exists := c.store.Load(key); !exists && c.full() {
		c.evictExpired(c.now())
		if c.full() {
			return
		}
	}

	if _, replaced := c.store.Swap(key, &cacheEntry{value: value, cachedAt: c.now()}); !replaced {
		c.size.Add(1)
		cacheEntries.Inc()
	}
}

func (c *CachedRepository) full() bool {
	return c.maxEntries > 0 && c.size.Load() >= int64(c.maxEntries)
}

// Purge drops every cached entry.
func (c *CachedRepository) Purge() {
	c.store.Range(func(key, val interface{}) bool {
		c.remove(key, val)
		return true
	})
}

func cached[T any](c *CachedRepository, key string, load func() (T, error), clone func(T) T) (T, error) {
	if c.ttl > 0 {
		if v, ok := c.get(key); ok {
			cacheLookups.WithLabelValues("hit").Inc()
			return clone(v.(T)), nil
		}
	}
	cacheLookups.WithLabelValues("miss").Inc()

	v, err := load()
	if err != nil {
		return v, err
	}
	if c.ttl > 0 {
		c.set(key, v)
		return clone(v), nil
	}
	return v, nil
}

// cachedValue caches a single statistics struct and hands out shallow copies.
func cachedValue[T any](c *CachedRepository, key string, load func() (*T, error)) (*T, error) {
	return cached(c, key, load, func(v *T) *T {
		if v == nil {
			return nil
		}
		cp := *v
		return &cp
	})
}

// cachedList caches a list and hands out copies of it.
func cachedList[T any](c *CachedRepository, key string, load func() ([]T, error)) ([]T, error) {
	return cached(c, key, load, func(v []T) []T { return slices.Clone(v) })
}

// Warm loads every category that takes no parameters into the cache.
func (c *CachedRepository) Warm(ctx context.Context) error {
	loaders := []func(context.Context) error{
		func(ctx context.Context) error { _, err := c.EnterpriseStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.OverviewStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.SecurityStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.BusinessStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.WorkspaceStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.OrganizationStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.UserStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.ActiveUsers(ctx); return err },
		func(ctx context.Context) error { _, err := c.SSOStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.SSOProviders(ctx); return err },
		func(ctx context.Context) error { _, err := c.AuditActivities(ctx); return err },
		func(ctx context.Context) error { _, err := c.LoginActivity(ctx); return err },
		func(ctx context.Context) error { _, err := c.CustomerStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.ComplianceStats(ctx); return err },
		func(ctx context.Context) error { _, err := c.SystemHealth(ctx); return err },
		func(ctx context.Context) error { _, err := c.PerformanceMetrics(ctx); return err },
		func(ctx context.Context) error { _, err := c.ResourceUsage(ctx); return err },
	}

	var errs []error
	for _, load := range loaders {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := load(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *CachedRepository) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}

func (c *CachedRepository) EnterpriseStats(ctx context.Context) (*models.EnterpriseStats, error) {
	return cachedValue(c, "enterprise", func() (*models.EnterpriseStats, error) { return c.next.EnterpriseStats(ctx) })
}

func (c *CachedRepository) OverviewStats(ctx context.Context) (*models.OverviewStats, error) {
	return cachedValue(c, "overview", func() (*models.OverviewStats, error) { return c.next.OverviewStats(ctx) })
}

func (c *CachedRepository) SecurityStats(ctx context.Context) (*models.SecurityStats, error) {
	return cachedValue(c, "security", func() (*models.SecurityStats, error) { return c.next.SecurityStats(ctx) })
}

func (c *CachedRepository) BusinessStats(ctx context.Context) (*models.BusinessStats, error) {
	return cachedValue(c, "business", func() (*models.BusinessStats, error) { return c.next.BusinessStats(ctx) })
}

func (c *CachedRepository) WorkspaceStats(ctx context.Context) (*models.WorkspaceStats, error) {
	return cachedValue(c, "workspaces", func() (*models.WorkspaceStats, error) { return c.next.WorkspaceStats(ctx) })
}

func (c *CachedRepository) TopWorkspaces(ctx context.Context, limit int) ([]models.WorkspaceSummary, error) {
	return cachedList(c, fmt.Sprintf("top_workspaces:%d", limit), func() ([]models.WorkspaceSummary, error) {
		return c.next.TopWorkspaces(ctx, limit)
	})
}

func (c *CachedRepository) WorkspaceGrowth(ctx context.Context, period string) (*models.WorkspaceGrowth, error) {
	return cachedValue(c, fmt.Sprintf("workspace_growth:%q", period), func() (*models.WorkspaceGrowth, error) {
		return c.next.WorkspaceGrowth(ctx, period)
	})
}

func (c *CachedRepository) OrganizationStats(ctx context.Context) (*models.OrganizationStats, error) {
	return cachedValue(c, "organizations", func() (*models.OrganizationStats, error) { return c.next.OrganizationStats(ctx) })
}

func (c *CachedRepository) TopOrganizations(ctx context.Context, limit int) ([]models.OrganizationSummary, error) {
	return cachedList(c, fmt.Sprintf("top_organizations:%d", limit), func() ([]models.OrganizationSummary, error) {
		return c.next.TopOrganizations(ctx, limit)
	})
}

func (c *CachedRepository) UserStats(ctx context.Context) (*models.UserStats, error) {
	return cachedValue(c, "users", func() (*models.UserStats, error) { return c.next.UserStats(ctx) })
}

func (c *CachedRepository) UserGrowth(ctx context.Context, period string) (*models.UserGrowth, error) {
	return cachedValue(c, fmt.Sprintf("user_growth:%q", period), func() (*models.UserGrowth, error) { return c.next.UserGrowth(ctx, period) })
}

func (c *CachedRepository) ActiveUsers(ctx context.Context) (*models.ActiveUsers, error) {
	return cachedValue(c, "active_users", func() (*models.ActiveUsers, error) { return c.next.ActiveUsers(ctx) })
}

func (c *CachedRepository) SSOStats(ctx context.Context) (*models.SSOStats, error) {
	return cachedValue(c, "sso", func() (*models.SSOStats, error) { return c.next.SSOStats(ctx) })
}

func (c *CachedRepository) SSOLoginStats(ctx context.Context, period string) (*models.SSOLoginStats, error) {
	return cachedValue(c, fmt.Sprintf("sso_logins:%q", period), func() (*models.SSOLoginStats, error) { return c.next.SSOLoginStats(ctx, period) })
}

func (c *CachedRepository) SSOProviders(ctx context.Context) ([]models.SSOProviderStat, error) {
	return cachedList(c, "sso_providers", func() ([]models.SSOProviderStat, error) { return c.next.SSOProviders(ctx) })
}

func (c *CachedRepository) AuditActivities(ctx context.Context) ([]models.ActivityEvent, error) {
	return cachedList(c, "audit", func() ([]models.ActivityEvent, error) { return c.next.AuditActivities(ctx) })
}

func (c *CachedRepository) SecurityEvents(ctx context.Context, period string) (*models.SecurityEvents, error) {
	return cachedValue(c, fmt.Sprintf("security_events:%q", period), func() (*models.SecurityEvents, error) {
		return c.next.SecurityEvents(ctx, period)
	})
}

func (c *CachedRepository) LoginActivity(ctx context.Context) (*models.LoginActivity, error) {
	return cachedValue(c, "login_activity", func() (*models.LoginActivity, error) { return c.next.LoginActivity(ctx) })
}

func (c *CachedRepository) RevenueStats(ctx context.Context, period string) (*models.RevenueStats, error) {
	return cachedValue(c, fmt.Sprintf("revenue:%q", period), func() (*models.RevenueStats, error) { return c.next.RevenueStats(ctx, period) })
}

func (c *CachedRepository) CustomerStats(ctx context.Context) (*models.CustomerStats, error) {
	return cachedValue(c, "customers", func() (*models.CustomerStats, error) { return c.next.CustomerStats(ctx) })
}

func (c *CachedRepository) ComplianceStats(ctx context.Context) (*models.ComplianceStats, error) {
	return cachedValue(c, "compliance", func() (*models.ComplianceStats, error) { return c.next.ComplianceStats(ctx) })
}

func (c *CachedRepository) SystemHealth(ctx context.Context) (*models.SystemHealth, error) {
	return cachedValue(c, "system_health", func() (*models.SystemHealth, error) { return c.next.SystemHealth(ctx) })
}

func (c *CachedRepository) PerformanceMetrics(ctx context.Context) (*models.PerformanceMetrics, error) {
	return cachedValue(c, "performance", func() (*models.PerformanceMetrics, error) { return c.next.PerformanceMetrics(ctx) })
}

func (c *CachedRepository) ResourceUsage(ctx context.Context) (*models.ResourceUsage, error) {
	return cachedValue(c, "resources", func() (*models.ResourceUsage, error) { return c.next.ResourceUsage(ctx) })
}

func (c *CachedRepository) Analytics(ctx context.Context, period, metrics string) (*models.Analytics, error) {
	return cachedValue(c, fmt.Sprintf("analytics:%q|%q", period, metrics), func() (*models.Analytics, error) {
		return c.next.Analytics(ctx, period, metrics)
	})
}

func (c *CachedRepository) Trends(ctx context.Context, period, metric string) (*models.Trend, error) {
	return cachedValue(c, fmt.Sprintf("trends:%q|%q", period, metric), func() (*models.Trend, error) {
		return c.next.Trends(ctx, period, metric)
	})
}

func (c *CachedRepository) Comparison(ctx context.Context, q ComparisonQuery) (*models.Comparison, error) {
	key := fmt.Sprintf("comparison:%q|%q|%q", q.CurrentPeriod, q.PreviousPeriod, q.Metrics)
	return cachedValue(c, key, func() (*models.Comparison, error) { return c.next.Comparison(ctx, q) })
}

func (c *CachedRepository) ListActivity(ctx context.Context, f ActivityFilter) (*models.ActivityPage, error) {
	key := fmt.Sprintf("activity:%q|%q|%q|%q|%q|%d|%d",
		f.Type, f.WorkspaceID, f.OrganizationID, timeKey(f.StartDate), timeKey(f.EndDate), f.Limit, f.Offset)
	return cachedValue(c, key, func() (*models.ActivityPage, error) { return c.next.ListActivity(ctx, f) })
}

func (c *CachedRepository) RecentActivity(ctx context.Context, limit int) ([]models.ActivityEvent, error) {
	return cachedList(c, fmt.Sprintf("recent_activity:%d", limit), func() ([]models.ActivityEvent, error) {
		return c.next.RecentActivity(ctx, limit)
	})
}

// timeKey is empty for an unset bound.
func timeKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
