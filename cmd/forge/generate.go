package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"kestrel-hq/forge/pkg/cli"
	"kestrel-hq/forge/pkg/control/ast"
	"kestrel-hq/forge/pkg/control/generator"
)

var generateFlags struct {
	file   string
	output string
	watch  bool
	force  bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a policy draft to Rego source",
	Long: `Render a policy draft file to Rego source text.

Generation is deterministic: the same draft always produces the same output.
It is also one-directional; a draft marked as manually edited is refused
unless --force is given, because regenerating overwrites those edits.

Examples:
  # Generate to stdout
  forge generate --file draft.yaml

  # Generate to a file and regenerate on every draft change
  forge generate --file draft.yaml --output policy.rego --watch`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFlags.file, "file", "f", "", "draft file to render (required)")
	generateCmd.Flags().StringVarP(&generateFlags.output, "output", "o", "", "output file (default stdout)")
	generateCmd.Flags().BoolVarP(&generateFlags.watch, "watch", "w", false, "regenerate when the draft file changes")
	generateCmd.Flags().BoolVar(&generateFlags.force, "force", false, "overwrite manual source edits")
	generateCmd.MarkFlagRequired("file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	if err := generateOnce(); err != nil {
		return err
	}
	if !generateFlags.watch {
		return nil
	}
	return watchAndRegenerate()
}

func generateOnce() error {
	draft, err := readDraft(generateFlags.file)
	if err != nil {
		return cli.NewCommandError("generate", err)
	}
	if draft.Source == ast.SourceManual && !generateFlags.force {
		return cli.NewCommandError("generate",
			fmt.Errorf("draft %s has manual source edits; pass --force to overwrite them", generateFlags.file))
	}
	return writeOutput(generateFlags.output, generator.Generate(draft))
}

// watchAndRegenerate re-renders the draft on every write to it until
// interrupted.
func watchAndRegenerate() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return cli.NewCommandError("generate", fmt.Errorf("failed to create watcher: %w", err))
	}
	defer watcher.Close()

	// Watch the directory: editors commonly replace the file on save, which
	// drops a watch on the file itself.
	dir := filepath.Dir(generateFlags.file)
	if err := watcher.Add(dir); err != nil {
		return cli.NewCommandError("generate", fmt.Errorf("failed to watch %s: %w", dir, err))
	}

	logger := slog.Default().With("component", "generate.watch")
	logger.Info("watching draft for changes", "file", generateFlags.file)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	target := filepath.Clean(generateFlags.file)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := generateOnce(); err != nil {
				// Watch mode keeps running through bad intermediate saves.
				logger.Warn("regeneration failed", "error", err)
				continue
			}
			logger.Info("regenerated", "output", generateFlags.output)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-sigChan:
			logger.Info("stopping watch")
			return nil
		}
	}
}
