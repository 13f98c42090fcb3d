package kafka

import (
	"context"

	"github.com/eduboost/eventpipe/pkg/core/health"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProducerModule provides a connected Producer. Startup blocks until
// the brokers answer or the bounded retries are exhausted.
func ProducerModule() fx.Option {
	return fx.Options(
		fx.Provide(provideProducer),
		fx.Provide(func(p *Producer) Publisher { return p }),
	)
}

func provideProducer(lc fx.Lifecycle, log *zap.Logger, conf Config, readiness health.ComponentManager) (*Producer, error) {
	p, err := NewProducer(conf, log.With(zap.String("component", "producer")))
	if err != nil {
		return nil, err
	}

	markReady := readiness.AddComponent("kafka-producer")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.WaitForBrokers(ctx, conf.ConnectRetry); err != nil {
				return err
			}
			markReady()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Close()
			return nil
		},
	})

	return p, nil
}

// ConsumerModule provides a running Consumer. The service module must
// provide a Subscription and a MessageHandler.
func ConsumerModule() fx.Option {
	return fx.Options(
		fx.Provide(provideConsumer),
		fx.Invoke(func(c *Consumer) {}),
	)
}

func provideConsumer(lc fx.Lifecycle, log *zap.Logger, conf Config, sub Subscription, handler MessageHandler, readiness health.ComponentManager) (*Consumer, error) {
	c, err := NewConsumer(conf, sub, handler, log)
	if err != nil {
		return nil, err
	}

	markReady := readiness.AddComponent("kafka-consumer")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := c.WaitForBrokers(ctx, conf.ConnectRetry); err != nil {
				return err
			}
			if err := c.Start(); err != nil {
				return err
			}
			markReady()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return c.Stop(ctx)
		},
	})

	return c, nil
}
