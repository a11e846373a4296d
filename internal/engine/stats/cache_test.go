package stats

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"entdash/internal/platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	Repository
	calls map[string]int
	fail  error
}

func newCountingRepo() *countingRepo {
	return &countingRepo{
		Repository: NewStaticRepository(DefaultDataset(fixedNow)),
		calls:      map[string]int{},
	}
}

func (r *countingRepo) EnterpriseStats(ctx context.Context) (*models.EnterpriseStats, error) {
	r.calls["enterprise"]++
	if r.fail != nil {
		return nil, r.fail
	}
	return r.Repository.EnterpriseStats(ctx)
}

func (r *countingRepo) TopWorkspaces(ctx context.Context, limit int) ([]models.WorkspaceSummary, error) {
	r.calls["top_workspaces"]++
	return r.Repository.TopWorkspaces(ctx, limit)
}

func (r *countingRepo) ListActivity(ctx context.Context, f ActivityFilter) (*models.ActivityPage, error) {
	r.calls["activity"]++
	return r.Repository.ListActivity(ctx, f)
}

func newTestCache(t *testing.T, next Repository, ttl time.Duration, maxEntries int) *CachedRepository {
	t.Helper()
	c := NewCachedRepository(next, ttl, maxEntries)
	t.Cleanup(c.Stop)
	return c
}

func cacheLen(c *CachedRepository) int {
	n := 0
	c.store.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

func TestCachedRepository_Hit(t *testing.T) {
	ctx := context.Background()
	next := newCountingRepo()
	cache := newTestCache(t, next, time.Minute, 0)

	first, err := cache.EnterpriseStats(ctx)
	require.NoError(t, err)
	second, err := cache.EnterpriseStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls["enterprise"])
}

func TestCachedRepository_KeysIncludeArguments(t *testing.T) {
	ctx := context.Background()
	next := newCountingRepo()
	cache := newTestCache(t, next, time.Minute, 0)

	a, err := cache.TopWorkspaces(ctx, 2)
	require.NoError(t, err)
	b, err := cache.TopWorkspaces(ctx, 4)
	require.NoError(t, err)
	_, err = cache.TopWorkspaces(ctx, 2)
	require.NoError(t, err)

	assert.Len(t, a, 2)
	assert.Len(t, b, 4)
	assert.Equal(t, 2, next.calls["top_workspaces"])

	_, err = cache.ListActivity(ctx, ActivityFilter{Limit: 2})
	require.NoError(t, err)
	_, err = cache.ListActivity(ctx, ActivityFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	_, err = cache.ListActivity(ctx, ActivityFilter{Limit: 2, StartDate: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls["activity"])
}

func TestCachedRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	next := newCountingRepo()
	cache := newTestCache(t, next, time.Minute, 0)

	now := fixedNow
	cache.now = func() time.Time { return now }

	_, err := cache.EnterpriseStats(ctx)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = cache.EnterpriseStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls["enterprise"])
}

func TestCachedRepository_ErrorsNotCached(t *testing.T) {
	ctx := context.Background()
	next := newCountingRepo()
	next.fail = errors.New("store unavailable")
	cache := newTestCache(t, next, time.Minute, 0)

	_, err := cache.EnterpriseStats(ctx)
	assert.EqualError(t, err, "store unavailable")

	next.fail = nil
	stats, err := cache.EnterpriseStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 156, stats.TotalWorkspaces)
	assert.Equal(t, 2, next.calls["enterprise"])
}

func TestCachedRepository_ZeroTTLBypasses(t *testing.T) {
	ctx := context.Background()
	next := newCountingRepo()
	cache := newTestCache(t, next, 0, 0)

	for i := 0; i < 3; i++ {
		_, err := cache.EnterpriseStats(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, next.calls["enterprise"])
}

func TestCachedRepository_WarmAndPurge(t *testing.T) {
	ctx := context.Background()
	next := newCountingRepo()
	cache := newTestCache(t, next, time.Minute, 0)

	require.NoError(t, cache.Warm(ctx))
	assert.Equal(t, 1, next.calls["enterprise"])

	_, err := cache.EnterpriseStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls["enterprise"])

	cache.Purge()
	_, err = cache.EnterpriseStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls["enterprise"])
}

func TestCachedRepository_WarmReportsFailures(t *testing.T) {
	next := newCountingRepo()
	next.fail = errors.New("store unavailable")
	cache := newTestCache(t, next, time.Minute, 0)

	assert.ErrorContains(t, cache.Warm(context.Background()), "store unavailable")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, cache.Warm(ctx), context.Canceled)
}

func TestCachedRepository_SeparatorsInArguments(t *testing.T) {
	ctx := context.Background()
	next := newCountingRepo()
	cache := newTestCache(t, next, time.Minute, 0)

	first, err := cache.Comparison(ctx, ComparisonQuery{CurrentPeriod: "a|b", PreviousPeriod: "c", Metrics: "all"})
	require.NoError(t, err)
	second, err := cache.Comparison(ctx, ComparisonQuery{CurrentPeriod: "a", PreviousPeriod: "b|c", Metrics: "all"})
	require.NoError(t, err)

	assert.Equal(t, "a|b", first.CurrentPeriod)
	assert.Equal(t, "c", first.PreviousPeriod)
	assert.Equal(t, "a", second.CurrentPeriod)
	assert.Equal(t, "b|c", second.PreviousPeriod)

	trends, err := cache.Trends(ctx, "7d|x", "users")
	require.NoError(t, err)
	other, err := cache.Trends(ctx, "7d", "x|users")
	require.NoError(t, err)
	assert.Equal(t, "7d|x", trends.Period)
	assert.Equal(t, "x|users", other.Metric)

	_, err = cache.ListActivity(ctx, ActivityFilter{Type: "sso|1", WorkspaceID: "2", Limit: 10})
	require.NoError(t, err)
	_, err = cache.ListActivity(ctx, ActivityFilter{Type: "sso", WorkspaceID: "1|2", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls["activity"])
}

func TestCachedRepository_EvictExpired(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, newCountingRepo(), time.Minute, 0)

	now := fixedNow
	cache.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		_, err := cache.Analytics(ctx, "7d", fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, 100, cacheLen(cache))
	assert.Equal(t, int64(100), cache.size.Load())

	now = now.Add(30 * time.Second)
	assert.Equal(t, 0, cache.evictExpired(now))

	now = now.Add(time.Minute)
	assert.Equal(t, 100, cache.evictExpired(now))
	assert.Equal(t, 0, cacheLen(cache))
	assert.Equal(t, int64(0), cache.size.Load())
}

func TestCachedRepository_BackgroundSweep(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, newCountingRepo(), 5*time.Millisecond, 0)

	for i := 0; i < 50; i++ {
		_, err := cache.Analytics(ctx, "7d", fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return cache.size.Load() == 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestCachedRepository_MaxEntries(t *testing.T) {
	ctx := context.Background()
	next := newCountingRepo()
	cache := newTestCache(t, next, time.Minute, 2)

	now := fixedNow
	cache.now = func() time.Time { return now }

	for _, limit := range []int{1, 2, 3} {
		top, err := cache.TopWorkspaces(ctx, limit)
		require.NoError(t, err)
		assert.Len(t, top, limit)
	}
	assert.Equal(t, 2, cacheLen(cache))

	// A full cache still answers, it just stops storing.
	_, err := cache.TopWorkspaces(ctx, 3)
	require.NoError(t, err)
	_, err = cache.TopWorkspaces(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, next.calls["top_workspaces"])

	// Expired entries make room again.
	now = now.Add(2 * time.Minute)
	_, err = cache.TopWorkspaces(ctx, 3)
	require.NoError(t, err)
	_, err = cache.TopWorkspaces(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, next.calls["top_workspaces"])
	assert.Equal(t, 1, cacheLen(cache))
}

func TestCachedRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, newCountingRepo(), time.Minute, 0)

	first, err := cache.EnterpriseStats(ctx)
	require.NoError(t, err)
	first.TotalWorkspaces = -1

	second, err := cache.EnterpriseStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 156, second.TotalWorkspaces)
	second.TotalWorkspaces = -2

	third, err := cache.EnterpriseStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 156, third.TotalWorkspaces)

	top, err := cache.TopWorkspaces(ctx, 2)
	require.NoError(t, err)
	name := top[0].Name
	top[0].Name = "changed"

	again, err := cache.TopWorkspaces(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, name, again[0].Name)
}
