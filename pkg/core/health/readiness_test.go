package health

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddComponent(t *testing.T) {
	t.Run("registers component", func(t *testing.T) {
		r := newReadiness(zap.NewNop())

		r.AddComponent("postgres")

		assert.Len(t, r.components, 1)
		assert.Contains(t, r.components, "postgres")
		assert.False(t, r.components["postgres"].ready)
	})

	t.Run("panics on empty name", func(t *testing.T) {
		r := newReadiness(zap.NewNop())

		assert.Panics(t, func() {
			r.AddComponent("")
		})
	})

	t.Run("duplicate registration does not panic", func(t *testing.T) {
		r := newReadiness(zap.NewNop())

		r.AddComponent("postgres")
		r.AddComponent("postgres")

		assert.Len(t, r.components, 1)
	})
}

func TestIsReady(t *testing.T) {
	t.Run("not ready until every component is marked", func(t *testing.T) {
		r := newReadiness(zap.NewNop())

		markKafka := r.AddComponent("kafka-consumer")
		markPostgres := r.AddComponent("postgres")

		assert.False(t, r.IsReady())

		markKafka()
		assert.False(t, r.IsReady())

		markPostgres()
		assert.True(t, r.IsReady())
	})

	t.Run("marking twice is harmless", func(t *testing.T) {
		r := newReadiness(zap.NewNop())

		mark := r.AddComponent("kafka-producer")
		mark()
		mark()

		assert.True(t, r.IsReady())
	})
}

func TestGetStatus(t *testing.T) {
	r := newReadiness(zap.NewNop())

	mark := r.AddComponent("http-server")
	r.AddComponent("postgres")
	mark()

	status := r.GetStatus()

	assert.False(t, status.Ready)
	require.Len(t, status.Components, 2)

	byName := map[string]ComponentStatus{}
	for _, c := range status.Components {
		byName[c.Name] = c
	}
	assert.True(t, byName["http-server"].Ready)
	assert.False(t, byName["postgres"].Ready)
}

func TestWaitReady(t *testing.T) {
	t.Run("unblocks once all components are ready", func(t *testing.T) {
		r := newReadiness(zap.NewNop())
		mark := r.AddComponent("kafka-consumer")

		done := make(chan error, 1)
		go func() {
			done <- r.WaitReady(context.Background())
		}()

		mark()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("WaitReady did not unblock")
		}
	})

	t.Run("returns on context cancellation", func(t *testing.T) {
		r := newReadiness(zap.NewNop())
		r.AddComponent("kafka-consumer")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := r.WaitReady(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
