// Package notifier consumes every event topic under its own group and
// maps each event to a user-facing notification. It is purely reactive:
// no persistent state, no durable-store writes.
package notifier

import (
	"context"

	"go.uber.org/zap"
)

// Notification is the rendered, user-facing message.
type Notification struct {
	UserID   string
	Title    string
	Message  string
	Category string
}

// Sink dispatches a notification. The transport (push, email, SMS) is
// an external collaborator; the default sink logs.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// LogSink writes notifications to the service log.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.With(zap.String("component", "notification-sink"))}
}

func (s *LogSink) Send(ctx context.Context, n Notification) error {
	s.log.Info("notification sent",
		zap.String("user_id", n.UserID),
		zap.String("title", n.Title),
		zap.String("message", n.Message),
		zap.String("category", n.Category),
	)
	return nil
}
