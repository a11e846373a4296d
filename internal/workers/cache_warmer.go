package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Warmable is a cache that can be dropped and refilled.
type Warmable interface {
	Purge()
	Warm(ctx context.Context) error
}

// CacheWarmer periodically purges and refills a statistics cache so that
// figures changed in the store show up without waiting for the TTL.
type CacheWarmer struct {
	cache    Warmable
	interval time.Duration
}

func NewCacheWarmer(cache Warmable, interval time.Duration) *CacheWarmer {
	return &CacheWarmer{cache: cache, interval: interval}
}

// RefreshOnce purges the cache and warms it again.
func (w *CacheWarmer) RefreshOnce(ctx context.Context) error {
	start := time.Now()
	w.cache.Purge()
	if err := w.cache.Warm(ctx); err != nil {
		return err
	}
	log.Debug().Dur("duration", time.Since(start)).Msg("statistics cache warmed")
	return nil
}

// Run warms the cache immediately, then on every interval tick until ctx is done.
// A non-positive interval warms once and returns.
func (w *CacheWarmer) Run(ctx context.Context) {
	if err := w.RefreshOnce(ctx); err != nil {
		log.Warn().Err(err).Msg("initial cache warm failed")
	}
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("cache warmer stopped")
			return
		case <-ticker.C:
			if err := w.RefreshOnce(ctx); err != nil {
				log.Error().Err(err).Msg("cache warm failed")
			}
		}
	}
}
