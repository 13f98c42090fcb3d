package leaderboard

import (
	"context"
	"time"

	"github.com/eduboost/eventpipe/pkg/core/worker"
	"github.com/eduboost/eventpipe/pkg/event"
	"github.com/eduboost/eventpipe/pkg/kafka"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const groupID = "leaderboard-service"

// Module wires the leaderboard consumer: ranking-relevant topics, the
// in-memory cache, event- and timer-triggered refreshes and the
// cache-only read endpoint. The cold cache is populated during startup,
// before the HTTP listener binds.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewCache,
			NewStore,
			func(s *Store) Source { return s },
			newRefresher,
			NewHandler,
			func(h *Handler) kafka.MessageHandler { return h },
			newSubscription,
			worker.Register[*Refresher]("leaderboard-refresher", worker.WithReady()),
		),
		fx.Invoke(initialRefresh),
		fx.Invoke(registerRoutes),
	)
}

func newSubscription() kafka.Subscription {
	return kafka.Subscription{
		GroupID: groupID,
		Topics: event.TopicsFor(
			event.TypeTaskCompleted,
			event.TypeTaskUncompleted,
			event.TypeLevelUp,
		),
	}
}

func newRefresher(v *viper.Viper, cache *Cache, source Source, log *zap.Logger) *Refresher {
	v.SetDefault("leaderboard.size", 10)
	v.SetDefault("leaderboard.refresh-interval", 60*time.Second)

	return NewRefresher(cache, source, v.GetInt("leaderboard.size"), v.GetDuration("leaderboard.refresh-interval"), log)
}

func initialRefresh(lc fx.Lifecycle, r *Refresher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return r.Refresh(ctx)
		},
	})
}
