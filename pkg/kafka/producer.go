package kafka

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

// Publisher sends one message to a topic and reports delivery success.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

type Producer struct {
	producer  *kafka.Producer
	log       *zap.Logger
	connected atomic.Bool
}

func NewProducer(conf Config, log *zap.Logger) (*Producer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": conf.Brokers})
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return &Producer{producer: p, log: log}, nil
}

// Publish sends one message keyed by key and waits for the broker's
// delivery report. A delivery failure is returned to the caller, it is
// not retried here.
func (p *Producer) Publish(ctx context.Context, topic, key string, value []byte) error {
	deliveryChan := make(chan kafka.Event, 1)

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          value,
	}
	if err := p.producer.Produce(msg, deliveryChan); err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", topic, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-deliveryChan:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event %T", e)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("failed to deliver message to topic %s: %w", topic, m.TopicPartition.Error)
		}
		return nil
	}
}

// WaitForBrokers polls broker metadata under bounded backoff until at
// least one broker answers. Exhausting the retries surfaces a fatal
// connection error to the caller.
func (p *Producer) WaitForBrokers(ctx context.Context, conf RetryConfig) error {
	err := retryConnect(ctx, p.log, "broker connection", conf, func() error {
		meta, err := p.producer.GetMetadata(nil, false, 5000)
		if err != nil {
			return err
		}
		if len(meta.Brokers) == 0 {
			return fmt.Errorf("no brokers available")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("brokers unreachable: %w", err)
	}

	p.connected.Store(true)
	p.log.Info("producer connected")
	return nil
}

// Healthy reports whether the broker connection has been established.
func (p *Producer) Healthy() bool {
	return p.connected.Load()
}

func (p *Producer) Close() {
	p.connected.Store(false)
	p.producer.Close()
}
