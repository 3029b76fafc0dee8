package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kestrel-hq/forge/pkg/config"
	"kestrel-hq/forge/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Forge - policy control builder for the Kestrel authorization platform",
	Long: `Forge is the engine behind Kestrel's no-code policy builder. It turns
visually composed condition trees into Rego policies and keeps the visual
builder honest about what it can still represent.

It provides:
  - Rego generation from declarative policy drafts
  - Complexity analysis of generated or hand-edited policies
  - Draft validation with actionable suggestions
  - An HTTP API backing the visual builder frontend`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "forge.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration and installs the default logger. Every
// subcommand that touches config or logs goes through it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	if _, err := logging.Setup(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	Execute()
}
