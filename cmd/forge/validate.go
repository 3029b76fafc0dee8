package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kestrel-hq/forge/pkg/cli"
	ctrlErrors "kestrel-hq/forge/pkg/control/errors"
	"kestrel-hq/forge/pkg/control/validator"
)

var validateFlags struct {
	file   string
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a policy draft",
	Long: `Validate a policy draft: the save/deploy completeness gate (name, target
resource, enforcement point) plus a structural pass over the condition tree.

Examples:
  # Validate a draft
  forge validate --file draft.yaml

  # JSON output for CI
  forge validate --file draft.yaml --format json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "draft file to validate (required)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	draft, err := readDraft(validateFlags.file)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	type issue struct {
		Type       string `json:"type"`
		Field      string `json:"field,omitempty"`
		NodeID     string `json:"node_id,omitempty"`
		Message    string `json:"message"`
		Suggestion string `json:"suggestion,omitempty"`
	}
	result := struct {
		File   string  `json:"file"`
		Ready  bool    `json:"ready"`
		Valid  bool    `json:"valid"`
		Issues []issue `json:"issues,omitempty"`
	}{
		File:  validateFlags.file,
		Ready: draft.ReadyToPersist(),
		Valid: true,
	}

	if err := validator.New().Validate(draft); err != nil {
		result.Valid = false
		if list, ok := err.(*ctrlErrors.ErrorList); ok {
			for _, e := range list.Errors {
				result.Issues = append(result.Issues, issue{
					Type:       string(e.Type),
					Field:      e.Field,
					NodeID:     e.NodeID,
					Message:    e.Message,
					Suggestion: e.Suggestion,
				})
			}
		}
	}

	if validateFlags.format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Printf("Validating %s...\n", result.File)
		if result.Valid {
			fmt.Println("✓ Draft is structurally valid")
		}
		for _, iss := range result.Issues {
			fmt.Printf("✗ %s", iss.Message)
			if iss.Field != "" {
				fmt.Printf(" (field %s)", iss.Field)
			}
			if iss.NodeID != "" {
				fmt.Printf(" (node %s)", iss.NodeID)
			}
			fmt.Printf(" [%s]\n", iss.Type)
			if iss.Suggestion != "" {
				fmt.Printf("  = %s\n", iss.Suggestion)
			}
		}
		if result.Ready {
			fmt.Println("✓ Ready to save/deploy")
		} else {
			fmt.Println("⚠  Not ready to save/deploy: name, resource, and enforcement point are required")
		}
	}

	if !result.Valid {
		return cli.NewCommandError("validate", fmt.Errorf("validation failed"))
	}
	return nil
}
