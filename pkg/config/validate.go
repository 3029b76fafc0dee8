package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values defaults cannot repair.
func (c *Config) Validate() error {
	var problems []string

	if c.Builder.AutosaveInterval < 0 {
		problems = append(problems, "builder.autosave_interval cannot be negative")
	}
	if c.Builder.LintDebounce < 0 {
		problems = append(problems, "builder.lint_debounce cannot be negative")
	}

	switch c.Scratch.Backend {
	case "memory", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("scratch.backend must be 'memory' or 'sqlite', got %q", c.Scratch.Backend))
	}

	switch c.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("telemetry.logging.level must be debug/info/warn/error, got %q", c.Telemetry.Logging.Level))
	}
	switch c.Telemetry.Logging.Format {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("telemetry.logging.format must be json or text, got %q", c.Telemetry.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}
