package kafka

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := newConfig(viper.New(), zap.NewNop())

		assert.Equal(t, "localhost:9092", cfg.Brokers)
		assert.Equal(t, 100*time.Millisecond, cfg.ConnectRetry.InitialBackoff)
		assert.Equal(t, uint64(8), cfg.ConnectRetry.MaxRetries)
		assert.Equal(t, 3, cfg.Topics.Partitions)
		assert.Equal(t, 1, cfg.Topics.ReplicationFactor)
	})

	t.Run("explicit values win over defaults", func(t *testing.T) {
		v := viper.New()
		v.Set("kafka.brokers", "kafka-1:9092,kafka-2:9092")
		v.Set("kafka.topics.partitions", 6)
		v.Set("kafka.topics.replication-factor", 2)

		cfg := newConfig(v, zap.NewNop())

		assert.Equal(t, "kafka-1:9092,kafka-2:9092", cfg.Brokers)
		assert.Equal(t, 6, cfg.Topics.Partitions)
		assert.Equal(t, 2, cfg.Topics.ReplicationFactor)
	})
}
