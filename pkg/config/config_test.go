package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Builder.MaxLeaves != 5 {
		t.Errorf("MaxLeaves = %d, want 5", cfg.Builder.MaxLeaves)
	}
	if cfg.Builder.AutosaveInterval != 30*time.Second {
		t.Errorf("AutosaveInterval = %v, want 30s", cfg.Builder.AutosaveInterval)
	}
	if cfg.Builder.LintDebounce != 1500*time.Millisecond {
		t.Errorf("LintDebounce = %v, want 1.5s", cfg.Builder.LintDebounce)
	}
	if cfg.Backend.TokenEnv != "FORGE_API_TOKEN" {
		t.Errorf("TokenEnv = %q", cfg.Backend.TokenEnv)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Backend.Timeout)
	}
	if cfg.Scratch.Backend != "sqlite" || cfg.Scratch.Path != "forge-scratch.db" {
		t.Errorf("scratch defaults = %q / %q", cfg.Scratch.Backend, cfg.Scratch.Path)
	}
	if cfg.Scratch.MaxAge != 168*time.Hour {
		t.Errorf("MaxAge = %v, want 168h", cfg.Scratch.MaxAge)
	}
	if cfg.Telemetry.Logging.Level != "info" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("logging defaults = %q / %q", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Namespace != "forge" || cfg.Telemetry.Metrics.Subsystem != "builder" {
		t.Errorf("metrics defaults = %q / %q", cfg.Telemetry.Metrics.Namespace, cfg.Telemetry.Metrics.Subsystem)
	}
	if !cfg.Telemetry.MetricsEnabled() {
		t.Error("metrics not enabled by default")
	}
	if cfg.Server.ListenAddress != "127.0.0.1:8089" {
		t.Errorf("ListenAddress = %q", cfg.Server.ListenAddress)
	}
}

func TestApplyDefaults_DirectoryFallsBackToBase(t *testing.T) {
	cfg := &Config{}
	cfg.Backend.BaseURL = "https://api.example.com/v1"
	cfg.ApplyDefaults()

	if cfg.Backend.DirectoryURL != "https://api.example.com/v1" {
		t.Errorf("DirectoryURL = %q, want base URL", cfg.Backend.DirectoryURL)
	}

	explicit := &Config{}
	explicit.Backend.BaseURL = "https://api.example.com/v1"
	explicit.Backend.DirectoryURL = "https://dir.example.com"
	explicit.ApplyDefaults()

	if explicit.Backend.DirectoryURL != "https://dir.example.com" {
		t.Errorf("explicit DirectoryURL overwritten: %q", explicit.Backend.DirectoryURL)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() of missing file error = %v", err)
	}
	if cfg.Builder.MaxLeaves != 5 {
		t.Errorf("MaxLeaves = %d, want default 5", cfg.Builder.MaxLeaves)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.yaml")
	content := `
builder:
  max_leaves: 25
  autosave_interval: 10s
backend:
  base_url: https://api.example.com/v1
scratch:
  backend: memory
telemetry:
  logging:
    level: debug
    format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Builder.MaxLeaves != 25 {
		t.Errorf("MaxLeaves = %d, want 25", cfg.Builder.MaxLeaves)
	}
	if cfg.Builder.AutosaveInterval != 10*time.Second {
		t.Errorf("AutosaveInterval = %v, want 10s", cfg.Builder.AutosaveInterval)
	}
	// Unset fields still default.
	if cfg.Builder.LintDebounce != 1500*time.Millisecond {
		t.Errorf("LintDebounce = %v, want default", cfg.Builder.LintDebounce)
	}
	if cfg.Scratch.Backend != "memory" {
		t.Errorf("scratch backend = %q", cfg.Scratch.Backend)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("logging = %q / %q", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
	}
	if cfg.Backend.DirectoryURL != "https://api.example.com/v1" {
		t.Errorf("DirectoryURL = %q, want base URL fallback", cfg.Backend.DirectoryURL)
	}
}

func TestMetricsEnabled(t *testing.T) {
	// Leaving the key out keeps the default.
	path := filepath.Join(t.TempDir(), "forge.yaml")
	content := `
telemetry:
  metrics:
    namespace: custom
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Telemetry.MetricsEnabled() {
		t.Error("metrics disabled without an explicit enabled: false")
	}

	// An explicit false sticks.
	off := filepath.Join(t.TempDir(), "forge.yaml")
	if err := os.WriteFile(off, []byte("telemetry:\n  metrics:\n    enabled: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = Load(off)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Telemetry.MetricsEnabled() {
		t.Error("explicit enabled: false ignored")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("builder: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() of malformed YAML succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative autosave interval",
			mutate:  func(c *Config) { c.Builder.AutosaveInterval = -time.Second },
			wantErr: "autosave_interval",
		},
		{
			name:    "negative lint debounce",
			mutate:  func(c *Config) { c.Builder.LintDebounce = -time.Second },
			wantErr: "lint_debounce",
		},
		{
			name:    "unknown scratch backend",
			mutate:  func(c *Config) { c.Scratch.Backend = "redis" },
			wantErr: "scratch.backend",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantErr: "logging.level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestToken(t *testing.T) {
	cfg := Default()
	cfg.Backend.TokenEnv = "FORGE_TEST_TOKEN"

	t.Setenv("FORGE_TEST_TOKEN", "secret")
	if got := cfg.Token(); got != "secret" {
		t.Errorf("Token() = %q", got)
	}

	os.Unsetenv("FORGE_TEST_TOKEN")
	if got := cfg.Token(); got != "" {
		t.Errorf("Token() with unset env = %q, want empty", got)
	}
}
