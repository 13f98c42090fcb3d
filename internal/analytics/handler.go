package analytics

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/eduboost/eventpipe/pkg/event"
	"go.uber.org/zap"
)

// EventStore persists the derived analytics trail.
type EventStore interface {
	InsertAnalyticsRecord(ctx context.Context, e *event.Event) error
}

type Handler struct {
	metrics *Metrics
	store   EventStore
	log     *zap.Logger
}

func NewHandler(metrics *Metrics, store EventStore, log *zap.Logger) *Handler {
	return &Handler{
		metrics: metrics,
		store:   store,
		log:     log.With(zap.String("component", "analytics-handler")),
	}
}

// HandleMessage counts the event and, for completions, writes a
// best-effort analytics record. The insert failing never blocks the
// counter path.
func (h *Handler) HandleMessage(ctx context.Context, msg *kafka.Message) error {
	e, err := event.Decode(msg.Value)
	if err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	h.metrics.Record(e.EventType)

	h.log.Info("event processed",
		zap.String("event_type", string(e.EventType)),
		zap.String("user_id", e.UserID),
		zap.String("timestamp", e.Timestamp),
	)

	if e.EventType == event.TypeTaskCompleted {
		if err := h.store.InsertAnalyticsRecord(ctx, e); err != nil {
			h.log.Warn("failed to store analytics record", zap.Error(err))
		}
	}

	return nil
}
