package kafka

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// retryConnect runs op under bounded exponential backoff. It is used
// for connection-level startup work only; per-message failures are
// never retried through this path.
func retryConnect(ctx context.Context, log *zap.Logger, what string, conf RetryConfig, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = conf.InitialBackoff

	policy := backoff.WithContext(backoff.WithMaxRetries(b, conf.MaxRetries), ctx)

	return backoff.RetryNotify(op, policy, func(err error, next time.Duration) {
		log.Warn("retrying "+what,
			zap.Error(err),
			zap.Duration("backoff", next),
		)
	})
}
