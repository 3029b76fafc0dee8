package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kestrel-hq/forge/pkg/backend"
	"kestrel-hq/forge/pkg/cli"
)

var lintFlags struct {
	file   string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint policy source via the platform's lint service",
	Long: `Submit Rego source text to the platform's advisory lint service.

Lint results are advisory: they annotate the source but never change it.
An unreachable or unauthorized lint service is reported, not fatal.

Examples:
  # Lint a generated policy
  forge lint --file policy.rego

  # JSON output for CI
  forge lint --file policy.rego --format json`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "Rego file to lint (required)")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintCmd.MarkFlagRequired("file")
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(lintFlags.file)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	client := backend.New(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Token:   cfg.Token,
		Timeout: cfg.Backend.Timeout,
	})

	violations, err := client.Lint(cmd.Context(), string(data))
	if err != nil {
		if backend.AuthRequired(err) {
			fmt.Println("⚠  Lint service requires authentication; log in again and retry.")
			return nil
		}
		fmt.Println("⚠  Lint service unavailable; check that the backend is running.")
		if verbose {
			fmt.Printf("   (%v)\n", err)
		}
		return nil
	}

	if lintFlags.format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(violations)
	}

	if len(violations) == 0 {
		fmt.Println("✓ No lint findings")
		return nil
	}
	for _, v := range violations {
		fmt.Printf("%s:%d:%d [%s] %s", lintFlags.file, v.Line, v.Column, v.Severity, v.Message)
		if v.Rule != "" {
			fmt.Printf(" (%s)", v.Rule)
		}
		fmt.Println()
	}
	return nil
}
