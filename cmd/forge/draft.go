package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"kestrel-hq/forge/pkg/control/ast"
)

// readDraft loads a policy draft from a YAML file.
func readDraft(path string) (*ast.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft %s: %w", path, err)
	}
	var draft ast.Draft
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft %s: %w", path, err)
	}
	return &draft, nil
}

// writeDraft saves a policy draft to a YAML file.
func writeDraft(path string, draft *ast.Draft) error {
	data, err := yaml.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to serialize draft: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write draft %s: %w", path, err)
	}
	return nil
}

// writeOutput writes content to a file, or stdout when path is "-" or empty.
func writeOutput(path, content string) error {
	if path == "" || path == "-" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
