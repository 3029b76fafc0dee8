package config

import "time"

// Default creates a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Builder.MaxLeaves == 0 {
		c.Builder.MaxLeaves = 5
	}
	if c.Builder.AutosaveInterval == 0 {
		c.Builder.AutosaveInterval = 30 * time.Second
	}
	if c.Builder.LintDebounce == 0 {
		c.Builder.LintDebounce = 1500 * time.Millisecond
	}

	if c.Backend.TokenEnv == "" {
		c.Backend.TokenEnv = "FORGE_API_TOKEN"
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 10 * time.Second
	}
	if c.Backend.DirectoryURL == "" {
		c.Backend.DirectoryURL = c.Backend.BaseURL
	}

	if c.Scratch.Backend == "" {
		c.Scratch.Backend = "sqlite"
	}
	if c.Scratch.Path == "" {
		c.Scratch.Path = "forge-scratch.db"
	}
	if c.Scratch.PruneSchedule == "" {
		c.Scratch.PruneSchedule = "0 3 * * *"
	}
	if c.Scratch.MaxAge == 0 {
		c.Scratch.MaxAge = 168 * time.Hour
	}

	if c.Telemetry.Logging.Level == "" {
		c.Telemetry.Logging.Level = "info"
	}
	if c.Telemetry.Logging.Format == "" {
		c.Telemetry.Logging.Format = "text"
	}
	if c.Telemetry.Metrics.Enabled == nil {
		enabled := true
		c.Telemetry.Metrics.Enabled = &enabled
	}
	if c.Telemetry.Metrics.Namespace == "" {
		c.Telemetry.Metrics.Namespace = "forge"
	}
	if c.Telemetry.Metrics.Subsystem == "" {
		c.Telemetry.Metrics.Subsystem = "builder"
	}

	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = "127.0.0.1:8089"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
}
