package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"kestrel-hq/forge/pkg/directory"
	"kestrel-hq/forge/pkg/scratch"
	"kestrel-hq/forge/pkg/server"
	"kestrel-hq/forge/pkg/telemetry/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the builder API server",
	Long: `Run the HTTP API that backs the visual policy builder.

The server exposes generation, analysis, and validation endpoints plus
degrading proxies for the resource and bouncer directories. It starts the
scratch-store janitor and, when metrics are enabled, a Prometheus endpoint.

Examples:
  # Run with defaults (127.0.0.1:8089)
  forge serve

  # Run with a specific config
  forge serve --config /etc/forge/forge.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	store, err := openScratchStore(cfg.Scratch.Backend, cfg.Scratch.Path)
	if err != nil {
		return fmt.Errorf("failed to open scratch store: %w", err)
	}
	defer store.Close()

	var janitor *scratch.Janitor
	if pruner, ok := store.(scratch.Pruner); ok {
		janitor = scratch.NewJanitor(pruner, cfg.Scratch.PruneSchedule, cfg.Scratch.MaxAge)
		if err := janitor.Start(cmd.Context()); err != nil {
			return err
		}
		defer janitor.Stop()
	}

	var registry *prometheus.Registry
	var builderMetrics *metrics.BuilderMetrics
	if cfg.Telemetry.MetricsEnabled() {
		registry = prometheus.NewRegistry()
		builderMetrics = metrics.New(
			cfg.Telemetry.Metrics.Namespace,
			cfg.Telemetry.Metrics.Subsystem,
			registry,
		)
	}

	dirURL := cfg.Backend.DirectoryURL
	if dirURL == "" {
		dirURL = cfg.Backend.BaseURL
	}
	var dir *directory.Client
	if dirURL != "" {
		dir = directory.New(directory.Config{
			BaseURL: dirURL,
			Token:   cfg.Token,
			Timeout: cfg.Backend.Timeout,
		})
	}

	srv := server.New(server.Options{
		Config:    cfg.Server,
		Directory: dir,
		Metrics:   builderMetrics,
		Registry:  registry,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", "signal", sig)
	}

	if err := srv.Shutdown(cmd.Context()); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// openScratchStore builds the configured scratch backend.
func openScratchStore(backend, path string) (scratch.Store, error) {
	switch backend {
	case "memory":
		return scratch.NewMemoryStore(), nil
	case "", "sqlite":
		return scratch.NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown scratch backend %q (expected memory or sqlite)", backend)
	}
}
