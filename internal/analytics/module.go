package analytics

import (
	"net/http"
	"time"

	"github.com/eduboost/eventpipe/pkg/core/worker"
	"github.com/eduboost/eventpipe/pkg/event"
	"github.com/eduboost/eventpipe/pkg/kafka"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const groupID = "analytics-service"

// Module wires the analytics consumer: all five topics, in-process
// counters exposed over /metrics, a periodic report worker and the
// best-effort durable trail for completion events.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			newRegistry,
			NewMetrics,
			NewStore,
			func(s *Store) EventStore { return s },
			NewHandler,
			func(h *Handler) kafka.MessageHandler { return h },
			newSubscription,
			newReporter,
			worker.Register[*Reporter]("analytics-reporter", worker.WithReady()),
		),
		fx.Invoke(registerRoutes),
	)
}

func newRegistry() (*prometheus.Registry, prometheus.Registerer, prometheus.Gatherer) {
	reg := prometheus.NewRegistry()
	return reg, reg, reg
}

func newSubscription() kafka.Subscription {
	return kafka.Subscription{
		GroupID: groupID,
		Topics:  event.AllTopics(),
	}
}

func newReporter(v *viper.Viper, metrics *Metrics, log *zap.Logger) *Reporter {
	v.SetDefault("analytics.report-interval", 30*time.Second)
	return NewReporter(metrics, v.GetDuration("analytics.report-interval"), log)
}

func registerRoutes(mux *http.ServeMux, gatherer prometheus.Gatherer, metrics *Metrics) {
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"status":  "healthy",
			"service": groupID,
			"metrics": metrics.Snapshot(),
		})
	})
}
