package notifier

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/eduboost/eventpipe/pkg/event"
	"go.uber.org/zap"
)

type Handler struct {
	sink Sink
	log  *zap.Logger
}

func NewHandler(sink Sink, log *zap.Logger) *Handler {
	return &Handler{
		sink: sink,
		log:  log.With(zap.String("component", "notifier-handler")),
	}
}

func (h *Handler) HandleMessage(ctx context.Context, msg *kafka.Message) error {
	e, err := event.Decode(msg.Value)
	if err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	n, ok := Build(e)
	if !ok {
		h.log.Warn("unknown event type, no notification dispatched",
			zap.String("event_type", string(e.EventType)),
			zap.String("user_id", e.UserID))
		return nil
	}

	return h.sink.Send(ctx, n)
}
