package notifier

import (
	"github.com/eduboost/eventpipe/pkg/event"
	"github.com/eduboost/eventpipe/pkg/kafka"
	"go.uber.org/fx"
)

const groupID = "notification-service"

// Module wires the notification consumer: all five topics, the
// template mapping and a log-backed sink.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewLogSink,
			func(s *LogSink) Sink { return s },
			NewHandler,
			func(h *Handler) kafka.MessageHandler { return h },
			newSubscription,
		),
	)
}

func newSubscription() kafka.Subscription {
	return kafka.Subscription{
		GroupID: groupID,
		Topics:  event.AllTopics(),
	}
}
