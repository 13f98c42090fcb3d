package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

// MessageHandler is invoked once per delivered message. Returning an
// error marks the message as poison: it is logged and skipped, delivery
// continues with the next message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg *kafka.Message) error
}

// Subscription names the consumer group and the topics it reads. Each
// service uses a distinct group so every group receives every message
// independently.
type Subscription struct {
	GroupID string
	Topics  []string
}

type Consumer struct {
	consumer *kafka.Consumer
	topics   []string
	handler  MessageHandler
	log      *zap.Logger

	messagesChan chan *kafka.Message

	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
}

func NewConsumer(conf Config, sub Subscription, handler MessageHandler, log *zap.Logger) (*Consumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":        conf.Brokers,
		"group.id":                 sub.GroupID,
		"session.timeout.ms":       30000,
		"heartbeat.interval.ms":    3000,
		"enable.auto.commit":       true,
		"enable.auto.offset.store": false,
		"auto.commit.interval.ms":  3000,
		"auto.offset.reset":        "latest",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer for group %s: %w", sub.GroupID, err)
	}

	return &Consumer{
		consumer:     c,
		topics:       sub.Topics,
		handler:      handler,
		log:          log.With(zap.String("component", "consumer"), zap.String("group", sub.GroupID)),
		messagesChan: make(chan *kafka.Message, 100),
	}, nil
}

// WaitForBrokers polls broker metadata under bounded backoff until at
// least one broker answers.
func (c *Consumer) WaitForBrokers(ctx context.Context, conf RetryConfig) error {
	err := retryConnect(ctx, c.log, "broker connection", conf, func() error {
		meta, err := c.consumer.GetMetadata(nil, false, 5000)
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
	return nil
}

func (c *Consumer) Start() error {
	var startErr error
	c.startOnce.Do(func() {
		c.ctx, c.cancelFunc = context.WithCancel(context.Background())

		if err := c.consumer.SubscribeTopics(c.topics, nil); err != nil {
			startErr = fmt.Errorf("failed to subscribe to topics %v: %w", c.topics, err)
			return
		}

		c.wg.Add(2)
		go c.startReadingWorker()
		go c.startProcessingWorker()
		c.started.Store(true)
		c.log.Info("consumer started", zap.Strings("topics", c.topics))
	})
	return startErr
}

func (c *Consumer) startReadingWorker() {
	defer func() {
		c.log.Info("reading worker stopped")
		c.wg.Done()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			msg, err := c.consumer.ReadMessage(5 * time.Second)
			if err != nil {
				var kafkaErr kafka.Error
				if errors.As(err, &kafkaErr) && kafkaErr.IsTimeout() {
					continue
				}
				c.log.Error("failed to read message", zap.Error(err))
				continue
			}

			select {
			case <-c.ctx.Done():
				return
			case c.messagesChan <- msg:
			}
		}
	}
}

func (c *Consumer) startProcessingWorker() {
	defer func() {
		c.log.Info("processing worker stopped")
		c.wg.Done()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case msg := <-c.messagesChan:
			if c.ctx.Err() != nil {
				return
			}
			c.handleMessage(msg)
		}
	}
}

// handleMessage runs the handler and stores the offset. A handler
// failure does not stop consumption: the message is logged and skipped.
func (c *Consumer) handleMessage(msg *kafka.Message) {
	if err := c.handler.HandleMessage(c.ctx, msg); err != nil {
		c.log.Error("failed to process message, skipping",
			zap.String("key", string(msg.Key)),
			zap.String("topic", topicOf(msg)),
			zap.Int32("partition", msg.TopicPartition.Partition),
			zap.Int64("offset", int64(msg.TopicPartition.Offset)),
			zap.Error(err))
	}

	if _, err := c.consumer.StoreMessage(msg); err != nil {
		c.log.Error("failed to store offset", zap.Error(err))
	}
}

func (c *Consumer) Stop(ctx context.Context) error {
	if !c.started.Load() {
		c.log.Warn("consumer not started, skipping stop")
		return nil
	}

	var resultErr error

	c.stopOnce.Do(func() {
		c.log.Info("stopping consumer")
		c.cancelFunc()

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.wg.Wait()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			c.log.Warn("shutdown timed out waiting for workers", zap.Error(ctx.Err()))
		}

		if _, commitErr := c.consumer.Commit(); commitErr != nil {
			var kafkaErr kafka.Error
			if !errors.As(commitErr, &kafkaErr) || kafkaErr.Code() != kafka.ErrNoOffset {
				c.log.Warn("failed to commit offsets", zap.Error(commitErr))
			}
		}

		if closeErr := c.consumer.Close(); closeErr != nil {
			c.log.Error("failed to close consumer", zap.Error(closeErr))
			resultErr = closeErr
		}

		c.log.Info("consumer stopped")
	})

	return resultErr
}

func topicOf(msg *kafka.Message) string {
	if msg.TopicPartition.Topic == nil {
		return ""
	}
	return *msg.TopicPartition.Topic
}
