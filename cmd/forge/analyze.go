package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kestrel-hq/forge/pkg/cli"
	"kestrel-hq/forge/pkg/control/analyzer"
	"kestrel-hq/forge/pkg/control/generator"
)

var analyzeFlags struct {
	file   string
	draft  string
	format string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify policy complexity",
	Long: `Classify a policy's source text as basic, medium, or advanced.

Advanced policies use constructs the visual builder cannot represent; editing
them through the tree would silently drop those constructs, so the builder
shows a warning and suggests the code editor instead.

Examples:
  # Analyze a Rego file
  forge analyze --file policy.rego

  # Analyze what a draft would generate
  forge analyze --draft draft.yaml

  # JSON output for tooling
  forge analyze --file policy.rego --format json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFlags.file, "file", "f", "", "Rego file to analyze")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.draft, "draft", "d", "", "draft file to generate and analyze")
	analyzeCmd.Flags().StringVar(&analyzeFlags.format, "format", "text", "output format: text, json")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	if analyzeFlags.file == "" && analyzeFlags.draft == "" {
		return fmt.Errorf("either --file or --draft must be specified")
	}

	var source string
	switch {
	case analyzeFlags.file != "":
		data, err := os.ReadFile(analyzeFlags.file)
		if err != nil {
			return cli.NewCommandError("analyze", err)
		}
		source = string(data)
	default:
		draft, err := readDraft(analyzeFlags.draft)
		if err != nil {
			return cli.NewCommandError("analyze", err)
		}
		source = generator.Generate(draft)
	}

	report := analyzer.Analyze(source)

	if analyzeFlags.format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	fmt.Printf("Complexity: %s\n", report.Level)
	for i, reason := range report.Reasons {
		fmt.Printf("  - %s\n", reason)
		if i < len(report.Suggestions) {
			fmt.Printf("    %s\n", report.Suggestions[i])
		}
	}
	if report.Level == analyzer.LevelBasic {
		fmt.Println("The visual builder can represent this policy faithfully.")
	}
	return nil
}
