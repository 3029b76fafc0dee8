package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kestrel-hq/forge/pkg/cli"
	"kestrel-hq/forge/pkg/control/templates"
)

var templatesFlags struct {
	format string
}

var initFlags struct {
	template string
	output   string
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List starter policy templates",
	Long: `List the starter templates the builder offers for new policies.

Examples:
  # List templates
  forge templates

  # JSON output for tooling
  forge templates --format json`,
	RunE: runTemplates,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a draft from a starter template",
	Long: `Create a new policy draft file from a starter template.

Examples:
  # Start from the role gate template
  forge init --template role-gate --output draft.yaml`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(initCmd)

	templatesCmd.Flags().StringVar(&templatesFlags.format, "format", "text", "output format: text, json")

	initCmd.Flags().StringVarP(&initFlags.template, "template", "t", "", "template id (required, see 'forge templates')")
	initCmd.Flags().StringVarP(&initFlags.output, "output", "o", "draft.yaml", "draft file to create")
	initCmd.MarkFlagRequired("template")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	all := templates.All()

	if templatesFlags.format == "json" {
		type entry struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		out := make([]entry, 0, len(all))
		for _, t := range all {
			out = append(out, entry{ID: t.ID, Name: t.Name, Description: t.Description})
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	fmt.Println("Available templates:")
	for _, t := range all {
		fmt.Printf("  %-16s %s\n", t.ID, t.Description)
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	tmpl, ok := templates.ByID(initFlags.template)
	if !ok {
		return cli.NewCommandError("init",
			fmt.Errorf("unknown template %q, run 'forge templates' to list them", initFlags.template))
	}

	if _, err := os.Stat(initFlags.output); err == nil {
		return cli.NewCommandError("init",
			fmt.Errorf("%s already exists, refusing to overwrite", initFlags.output))
	}

	draft := tmpl.Build(uuid.NewString)
	if err := writeDraft(initFlags.output, draft); err != nil {
		return cli.NewCommandError("init", err)
	}
	fmt.Printf("✓ Created %s from template %s\n", initFlags.output, tmpl.ID)
	return nil
}
