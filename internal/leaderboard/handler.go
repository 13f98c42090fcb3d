package leaderboard

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/eduboost/eventpipe/pkg/event"
	"go.uber.org/zap"
)

type Handler struct {
	refresher *Refresher
	log       *zap.Logger
}

func NewHandler(refresher *Refresher, log *zap.Logger) *Handler {
	return &Handler{
		refresher: refresher,
		log:       log.With(zap.String("component", "leaderboard-handler")),
	}
}

// HandleMessage triggers a full recomputation for ranking-relevant
// events; everything else is ignored.
func (h *Handler) HandleMessage(ctx context.Context, msg *kafka.Message) error {
	e, err := event.Decode(msg.Value)
	if err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	switch e.EventType {
	case event.TypeTaskCompleted, event.TypeTaskUncompleted, event.TypeLevelUp:
	default:
		return nil
	}

	h.log.Info("ranking may have changed",
		zap.String("event_type", string(e.EventType)),
		zap.String("user_id", e.UserID))

	return h.refresher.Refresh(ctx)
}
