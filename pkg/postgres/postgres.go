// Package postgres provides a pooled connection to the relational
// datastore as an fx module.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func newPool(conf Config, log *zap.Logger) (*pgxpool.Pool, error) {
	poolConf, err := pgxpool.ParseConfig(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres connection string: %w", err)
	}
	if conf.MaxConns > 0 {
		poolConf.MaxConns = conf.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConf)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	return pool, nil
}

// ping verifies connectivity under bounded backoff. Exhausting the
// retries is a fatal startup error.
func ping(ctx context.Context, pool *pgxpool.Pool, conf Config, log *zap.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = conf.ConnectRetry.InitialBackoff
	policy := backoff.WithContext(backoff.WithMaxRetries(b, conf.ConnectRetry.MaxRetries), ctx)

	err := backoff.RetryNotify(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return pool.Ping(pingCtx)
		},
		policy,
		func(err error, next time.Duration) {
			log.Warn("retrying postgres connection", zap.Error(err), zap.Duration("backoff", next))
		},
	)
	if err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	log.Info("connected to postgres")
	return nil
}
