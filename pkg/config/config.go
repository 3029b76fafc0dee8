// Package config defines and loads the forge configuration: builder limits
// and timers, backend endpoints, scratch storage, telemetry, and the builder
// API server. Configuration is YAML with defaults applied before validation.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Builder contains the interactive builder's limits and timers.
	Builder BuilderConfig `yaml:"builder"`

	// Backend contains endpoints and auth for the policy platform backend.
	Backend BackendConfig `yaml:"backend"`

	// Scratch contains the crash-recovery scratch store settings.
	Scratch ScratchConfig `yaml:"scratch"`

	// Telemetry contains logging and metrics settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Server contains the builder API server settings.
	Server ServerConfig `yaml:"server"`
}

// BuilderConfig contains the builder's tier limits and timers.
type BuilderConfig struct {
	// MaxLeaves caps the total leaf-rule count across one condition tree.
	// Zero or negative means unlimited. Default: 5 (free tier).
	MaxLeaves int `yaml:"max_leaves"`

	// AutosaveInterval is how often the session snapshots the draft to the
	// scratch store. Zero disables autosave. Default: 30s.
	AutosaveInterval time.Duration `yaml:"autosave_interval"`

	// LintDebounce is how long after the last code edit the advisory lint
	// call fires. Default: 1500ms.
	LintDebounce time.Duration `yaml:"lint_debounce"`
}

// BackendConfig contains the policy backend and directory endpoints.
type BackendConfig struct {
	// BaseURL is the policy backend API root.
	BaseURL string `yaml:"base_url"`

	// DirectoryURL is the resource/bouncer directory API root. Defaults to
	// BaseURL when empty.
	DirectoryURL string `yaml:"directory_url"`

	// TokenEnv names the environment variable holding the bearer token.
	// Default: "FORGE_API_TOKEN". A missing token degrades the clients, it
	// does not fail startup.
	TokenEnv string `yaml:"token_env"`

	// Timeout bounds each backend request. Default: 10s.
	Timeout time.Duration `yaml:"timeout"`
}

// ScratchConfig contains the scratch store settings.
type ScratchConfig struct {
	// Backend selects the store: "memory" or "sqlite". Default: "sqlite".
	Backend string `yaml:"backend"`

	// Path is the SQLite database file. Default: "forge-scratch.db".
	Path string `yaml:"path"`

	// PruneSchedule is a standard cron expression for pruning stale entries.
	// Empty disables the janitor. Default: "0 3 * * *".
	PruneSchedule string `yaml:"prune_schedule"`

	// MaxAge is how old an entry must be before the janitor prunes it.
	// Default: 168h (one week).
	MaxAge time.Duration `yaml:"max_age"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsEnabled reports whether the /metrics endpoint is on. An absent
// setting means on; only an explicit "enabled: false" turns it off.
func (t TelemetryConfig) MetricsEnabled() bool {
	return t.Metrics.Enabled == nil || *t.Metrics.Enabled
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info".
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text". Default: "text".
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether the server exposes /metrics. Default: true.
	// A pointer so that leaving the key out of the file keeps the default.
	Enabled *bool `yaml:"enabled"`

	// Namespace and Subsystem prefix every metric name.
	// Defaults: "forge", "builder".
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// ServerConfig contains the builder API server settings.
type ServerConfig struct {
	// ListenAddress is the host:port to listen on. Default: "127.0.0.1:8089".
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout, WriteTimeout, and ShutdownTimeout bound request handling
	// and graceful shutdown. Defaults: 15s, 15s, 10s.
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}
