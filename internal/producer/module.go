package producer

import (
	"context"
	"net/http"

	"github.com/eduboost/eventpipe/pkg/event"
	"github.com/eduboost/eventpipe/pkg/kafka"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires the ingress service: topic provisioning at startup and
// one HTTP route per event type. The HTTP listener binds only after the
// broker connection and topic provisioning hooks have completed.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewStore,
			newHandler,
		),
		fx.Invoke(provisionTopics),
		fx.Invoke(registerRoutes),
	)
}

func newHandler(p *kafka.Producer, store *Store, log *zap.Logger) *Handler {
	return NewHandler(p, store, p.Healthy, log)
}

func provisionTopics(lc fx.Lifecycle, p *kafka.Producer, conf kafka.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return p.EnsureTopics(ctx, event.AllTopics(), conf.Topics)
		},
	})
}

func registerRoutes(mux *http.ServeMux, h *Handler) {
	h.Register(mux)
}
