package httpserver

import (
	"context"
	"net/http"

	"github.com/eduboost/eventpipe/pkg/core/health"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides an *http.ServeMux for route registration and starts
// the listener once every earlier lifecycle hook (broker connection,
// topic provisioning, store ping) has completed. Add this module after
// the service module so routes are registered before the bind.
func Module(defaultPort int) fx.Option {
	return fx.Options(
		fx.Provide(newConfig(defaultPort)),
		fx.Provide(newServeMux),
		fx.Invoke(startHTTPServer),
	)
}

func newServeMux() (*http.ServeMux, http.Handler) {
	mux := http.NewServeMux()
	return mux, mux
}

func startHTTPServer(lc fx.Lifecycle, log *zap.Logger, conf Config, handler http.Handler, readiness health.ComponentManager, shutdowner fx.Shutdowner) {
	var srv *Server
	markReady := readiness.AddComponent("http-server")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Created in OnStart, all routes are registered by now.
			srv = newServer(log, conf, handler)

			go func() {
				if err := srv.Serve(markReady); err != nil {
					log.Error("HTTP server failed, shutting down application", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if srv != nil {
				return srv.Shutdown(ctx)
			}
			return nil
		},
	})
}
