package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillcoder/restart-notifier/internal/infra/shutdown"
)

// MetricsServer serves Prometheus metrics on a dedicated port.
type MetricsServer struct {
	logger     *slog.Logger
	port       string
	gatherer   prometheus.Gatherer
	server     *http.Server
	addr       atomic.Pointer[string]
	ready      chan struct{}
	inShutdown atomic.Bool
}

// NewMetricsServer creates a new metrics server that serves GET /metrics on the given port.
// A nil gatherer serves the default registry.
func NewMetricsServer(logger *slog.Logger, port string, gatherer prometheus.Gatherer) *MetricsServer {
	if port == "" {
		port = defaultMetricsPort
	}

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &MetricsServer{
		logger:   logger.With("component", "metrics-server"),
		port:     port,
		gatherer: gatherer,
		ready:    make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*MetricsServer)(nil)

// Name returns the name of the metrics server component.
func (s *MetricsServer) Name() string {
	return "metrics-server"
}

// PingerReadyCritical reports that metrics do not gate readiness.
func (s *MetricsServer) PingerReadyCritical() bool {
	return false
}

// Ping returns nil when the server is ready to serve.
func (s *MetricsServer) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
		return nil
	default:
		return fmt.Errorf("metrics: %w", ErrNotReady)
	}
}

// Handler builds the metrics mux; exposed for tests.
func (s *MetricsServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return mux
}

// Start starts the metrics HTTP server in a goroutine.
func (s *MetricsServer) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "metrics server is shutting down, skipping start")

		return nil
	}

	listener, err := listen(ctx, s.port)
	if err != nil {
		return fmt.Errorf("listen metrics tcp: %w", err)
	}

	s.server = newHTTPServer(s.Handler())

	addr := listener.Addr().String()
	s.addr.Store(&addr)

	s.logger.InfoContext(ctx, "metrics server listening", "addr", addr)

	go func() {
		close(s.ready)

		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "metrics server error", "reason", err)
		}
	}()

	return nil
}

// Ready returns a channel that is closed when the metrics server is ready.
func (s *MetricsServer) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address, empty before Start.
func (s *MetricsServer) Addr() string {
	if addr := s.addr.Load(); addr != nil {
		return *addr
	}

	return ""
}

// Shutdown gracefully shuts down the metrics server.
//
//nolint:dupl // mirrors Server.Shutdown for same lifecycle; dedup would abstract over *http.Server
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "metrics server is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "metrics server shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down metrics server")

	if s.server == nil {
		return nil
	}

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.ErrorContext(ctx, "error shutting down metrics server", "reason", err)

		return fmt.Errorf("metrics server shutdown: %w", err)
	}

	s.logger.InfoContext(ctx, "metrics server closed properly")

	return nil
}
