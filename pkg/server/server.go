// Package server exposes the builder core over HTTP for UI frontends:
// generation, analysis, validation, and degrading proxies for the directory
// listings, plus health and metrics endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kestrel-hq/forge/pkg/config"
	"kestrel-hq/forge/pkg/directory"
	"kestrel-hq/forge/pkg/telemetry/metrics"
)

// Server is the builder API server.
type Server struct {
	config     config.ServerConfig
	httpServer *http.Server
	logger     *slog.Logger

	// directory is optional; without it the listing endpoints answer with
	// degraded, empty results.
	directory *directory.Client

	metrics  *metrics.BuilderMetrics
	registry *prometheus.Registry

	mu        sync.Mutex
	isRunning bool
}

// Options configures a server.
type Options struct {
	Config    config.ServerConfig
	Directory *directory.Client
	Metrics   *metrics.BuilderMetrics
	Registry  *prometheus.Registry
}

// New creates a builder API server.
func New(opts Options) *Server {
	s := &Server{
		config:    opts.Config,
		directory: opts.Directory,
		metrics:   opts.Metrics,
		registry:  opts.Registry,
		logger:    slog.Default().With("component", "server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/generate", s.handleGenerate)
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /v1/validate", s.handleValidate)
	mux.HandleFunc("GET /v1/resources", s.handleResources)
	mux.HandleFunc("GET /v1/bouncers", s.handleBouncers)
	mux.HandleFunc("GET /v1/templates", s.handleTemplates)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	handler := RequestIDMiddleware(LoggingMiddleware(s.logger)(mux))

	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddress,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	return s
}

// Start begins serving. It blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.logger.Info("builder API listening", "address", s.config.ListenAddress)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting up to the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return nil
	}
	s.isRunning = false

	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down builder API")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
