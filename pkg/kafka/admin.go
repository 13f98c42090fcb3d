package kafka

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// EnsureTopics provisions the given topics. Provisioning is idempotent:
// a topic that already exists is a no-op, not an error.
func (p *Producer) EnsureTopics(ctx context.Context, names []string, conf TopicConfig) error {
	admin, err := kafka.NewAdminClientFromProducer(p.producer)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	specs := lo.Map(names, func(name string, _ int) kafka.TopicSpecification {
		return kafka.TopicSpecification{
			Topic:             name,
			NumPartitions:     conf.Partitions,
			ReplicationFactor: conf.ReplicationFactor,
		}
	})

	results, err := admin.CreateTopics(ctx, specs)
	if err != nil {
		return fmt.Errorf("failed to create topics: %w", err)
	}

	for _, result := range results {
		code := result.Error.Code()
		if code != kafka.ErrNoError && code != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("failed to create topic %s: %w", result.Topic, result.Error)
		}
	}

	p.log.Info("topics provisioned",
		zap.Strings("topics", names),
		zap.Int("partitions", conf.Partitions),
	)
	return nil
}
