// Package api exposes the fund data service over a small REST API: thin
// glue that decodes requests, calls the service, and maps domain errors
// to status codes. It also owns notification dispatch, which the service
// itself deliberately does not do.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getfondo/fondod/pkg/logging"
	"github.com/getfondo/fondod/pkg/notify"
	"github.com/getfondo/fondod/pkg/service"
)

// Server serves the REST API.
type Server struct {
	svc        *service.Service
	notifier   notify.Notifier
	httpServer *http.Server
	addr       string
	startTime  time.Time
	log        *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithNotifier sets the notifier used for subscription confirmations.
// Defaults to a no-op notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Server) { s.notifier = n }
}

// New creates a Server for the given listen address and service.
func New(addr string, svc *service.Service, opts ...Option) *Server {
	s := &Server{
		svc:      svc,
		notifier: notify.Nop(),
		addr:     addr,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route table. Exposed separately so tests can drive
// the API without a listening socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return mux
}

// Start begins serving and blocks until the server is shut down.
func (s *Server) Start() error {
	s.startTime = time.Now()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("api server listening", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Uptime returns whole seconds since Start.
func (s *Server) Uptime() int64 {
	if s.startTime.IsZero() {
		return 0
	}
	return int64(time.Since(s.startTime).Seconds())
}
