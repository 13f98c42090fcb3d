package leaderboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source provides ranking data for a refresh.
type Source interface {
	TopUsers(ctx context.Context, limit int) ([]Entry, error)
}

// Refresher recomputes the cache from the store. Concurrent triggers
// (event-driven and timer-driven) are coalesced through singleflight,
// so a recomputation already in flight is never duplicated and a slower
// run cannot overwrite a faster, later one.
type Refresher struct {
	cache    *Cache
	source   Source
	limit    int
	interval time.Duration
	group    singleflight.Group
	log      *zap.Logger
}

func NewRefresher(cache *Cache, source Source, limit int, interval time.Duration, log *zap.Logger) *Refresher {
	return &Refresher{
		cache:    cache,
		source:   source,
		limit:    limit,
		interval: interval,
		log:      log.With(zap.String("component", "leaderboard-refresher")),
	}
}

// Refresh queries the store and atomically replaces the cache.
func (r *Refresher) Refresh(ctx context.Context) error {
	_, err, _ := r.group.Do("refresh", func() (any, error) {
		entries, err := r.source.TopUsers(ctx, r.limit)
		if err != nil {
			return nil, fmt.Errorf("failed to recompute leaderboard: %w", err)
		}

		r.cache.Replace(entries)
		r.log.Info("leaderboard refreshed", zap.Int("entries", len(entries)))
		return nil, nil
	})
	return err
}

// Run refreshes the cache on a fixed timer, self-healing against missed
// or out-of-order events. Refresh failures are logged, the timer keeps
// going.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.log.Error("periodic refresh failed", zap.Error(err))
			}
		}
	}
}
