package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/eduboost/eventpipe/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSink struct {
	err  error
	sent []Notification
}

func (f *fakeSink) Send(ctx context.Context, n Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		e        *event.Event
		title    string
		message  string
		category string
	}{
		{
			name: "task completed",
			e: &event.Event{
				EventType: event.TypeTaskCompleted,
				UserID:    "u1",
				TaskTitle: "Math",
				Points:    10,
			},
			title:    "Task Completed!",
			message:  `You completed "Math" and earned 10 points`,
			category: "success",
		},
		{
			name: "task uncompleted",
			e: &event.Event{
				EventType: event.TypeTaskUncompleted,
				UserID:    "u1",
				TaskTitle: "Math",
				Points:    10,
			},
			title:    "Task Unchecked",
			message:  `You unchecked "Math" and lost 10 points`,
			category: "info",
		},
		{
			name: "achievement unlocked",
			e: &event.Event{
				EventType:       event.TypeAchievementUnlocked,
				UserID:          "u1",
				AchievementName: "First Steps",
				Points:          50,
			},
			title:    "Achievement Unlocked!",
			message:  "You unlocked: First Steps (+50 points)",
			category: "achievement",
		},
		{
			name: "level up",
			e: &event.Event{
				EventType: event.TypeLevelUp,
				UserID:    "u1",
				OldLevel:  2,
				NewLevel:  3,
			},
			title:    "Level Up!",
			message:  "Congratulations! You are now level 3",
			category: "celebration",
		},
		{
			name: "user login",
			e: &event.Event{
				EventType: event.TypeUserLogin,
				UserID:    "u1",
				Timestamp: "2026-08-31T10:00:00Z",
			},
			title:    "Welcome back",
			message:  "Last access: 2026-08-31T10:00:00Z",
			category: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := Build(tt.e)

			require.True(t, ok)
			assert.Equal(t, "u1", n.UserID)
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, tt.message, n.Message)
			assert.Equal(t, tt.category, n.Category)
		})
	}

	t.Run("unknown type builds nothing", func(t *testing.T) {
		_, ok := Build(&event.Event{EventType: "task_exploded", UserID: "u1"})
		assert.False(t, ok)
	})
}

func TestNotifierHandler(t *testing.T) {
	msg := func(body string) *kafka.Message {
		return &kafka.Message{Value: []byte(body)}
	}

	t.Run("known event reaches the sink", func(t *testing.T) {
		sink := &fakeSink{}
		h := NewHandler(sink, zap.NewNop())

		err := h.HandleMessage(context.Background(),
			msg(`{"eventType":"level_up","userId":"u1","newLevel":5}`))

		require.NoError(t, err)
		require.Len(t, sink.sent, 1)
		assert.Equal(t, "Level Up!", sink.sent[0].Title)
		assert.Equal(t, "Congratulations! You are now level 5", sink.sent[0].Message)
	})

	t.Run("unknown event type is dropped without error", func(t *testing.T) {
		sink := &fakeSink{}
		h := NewHandler(sink, zap.NewNop())

		err := h.HandleMessage(context.Background(),
			msg(`{"eventType":"task_exploded","userId":"u1"}`))

		assert.NoError(t, err)
		assert.Empty(t, sink.sent)
	})

	t.Run("undecodable message is an error", func(t *testing.T) {
		sink := &fakeSink{}
		h := NewHandler(sink, zap.NewNop())

		err := h.HandleMessage(context.Background(), msg(`{"userId":"u1"}`))

		assert.Error(t, err)
		assert.Empty(t, sink.sent)
	})

	t.Run("sink failure propagates", func(t *testing.T) {
		sink := &fakeSink{err: errors.New("smtp unavailable")}
		h := NewHandler(sink, zap.NewNop())

		err := h.HandleMessage(context.Background(),
			msg(`{"eventType":"user_login","userId":"u1"}`))

		assert.ErrorContains(t, err, "smtp unavailable")
	})
}
