package kafka

import (
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Config struct {
	// Brokers is a comma-separated list of broker addresses.
	Brokers string

	ConnectRetry RetryConfig
	Topics       TopicConfig
}

// RetryConfig bounds the startup connect retries. Exhausting the
// retries is a fatal startup error, the process does not retry forever.
type RetryConfig struct {
	InitialBackoff time.Duration
	MaxRetries     uint64
}

// TopicConfig controls how topics are provisioned at startup.
type TopicConfig struct {
	Partitions        int
	ReplicationFactor int
}

// ConfigModule provides the broker configuration.
func ConfigModule() fx.Option {
	return fx.Provide(newConfig)
}

func newConfig(v *viper.Viper, log *zap.Logger) Config {
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.connect-retry.initial-backoff", 100*time.Millisecond)
	v.SetDefault("kafka.connect-retry.max-retries", 8)
	v.SetDefault("kafka.topics.partitions", 3)
	v.SetDefault("kafka.topics.replication-factor", 1)

	cfg := Config{
		Brokers: v.GetString("kafka.brokers"),
		ConnectRetry: RetryConfig{
			InitialBackoff: v.GetDuration("kafka.connect-retry.initial-backoff"),
			MaxRetries:     v.GetUint64("kafka.connect-retry.max-retries"),
		},
		Topics: TopicConfig{
			Partitions:        v.GetInt("kafka.topics.partitions"),
			ReplicationFactor: v.GetInt("kafka.topics.replication-factor"),
		},
	}

	log.Info("loaded kafka config",
		zap.String("brokers", cfg.Brokers),
		zap.Int("partitions", cfg.Topics.Partitions),
		zap.Int("replication_factor", cfg.Topics.ReplicationFactor),
	)
	return cfg
}
