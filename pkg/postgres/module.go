package postgres

import (
	"context"

	"github.com/eduboost/eventpipe/pkg/core/health"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides a *pgxpool.Pool tied to the application lifecycle.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(newConfig),
		fx.Provide(providePool),
	)
}

func providePool(lc fx.Lifecycle, conf Config, log *zap.Logger, readiness health.ComponentManager) (*pgxpool.Pool, error) {
	poolLog := log.With(zap.String("component", "postgres"))

	pool, err := newPool(conf, poolLog)
	if err != nil {
		return nil, err
	}

	markReady := readiness.AddComponent("postgres")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := ping(ctx, pool, conf, poolLog); err != nil {
				return err
			}
			markReady()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}
