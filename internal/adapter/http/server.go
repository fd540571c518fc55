package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the dashboard API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// writeHeadroom is the time a submission has to write its answer after the
// inference call has used its full timeout.
const writeHeadroom = 10 * time.Second

// NewServer creates an HTTP server with the /api/v1 assessment routes and
// /healthz, /readyz, and /metrics. upstreamTimeout is the inference API
// timeout; submissions wait on it, so the write deadline extends past it.
func NewServer(addr string, upstreamTimeout time.Duration, svc Assessor, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: upstreamTimeout + writeHeadroom,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	api := &apiHandler{svc: svc, logger: logger}
	mux.HandleFunc("POST /api/v1/assess/{kind}", api.handleAssess)
	mux.HandleFunc("GET /api/v1/assess/{kind}/latest", api.handleLatest)
	mux.HandleFunc("GET /api/v1/fallback/{kind}", api.handleFallback)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
