// Package httpserver runs the service HTTP listener as an fx module.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

type Server struct {
	httpSrv *http.Server
	log     *zap.Logger
}

func newServer(log *zap.Logger, conf Config, handler http.Handler) *Server {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(conf.Port),
		Handler:           handler,
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ReadTimeout:       conf.ReadTimeout,
		WriteTimeout:      conf.WriteTimeout,
		IdleTimeout:       conf.IdleTimeout,
	}
	return &Server{httpSrv: srv, log: log}
}

// Serve binds the listener, invokes ready, and blocks until the server
// stops. http.ErrServerClosed is not treated as an error.
func (s *Server) Serve(ready func()) error {
	ln, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		s.log.Error("failed to listen", zap.Error(err))
		return err
	}
	s.log.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))

	if ready != nil {
		ready()
	}

	if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
		s.log.Error("HTTP server stopped with error", zap.Error(err))
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
