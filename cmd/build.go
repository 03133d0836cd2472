package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/assetpipe/pkg/config"
	"github.com/grovetools/assetpipe/pkg/emitter"
	"github.com/grovetools/assetpipe/pkg/pipeline"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var projectDir string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Process all configured assets and emit artifacts",
		Long: `Walks the configured context directory, names every matching asset
by its content hash, emits the artifacts into the output directory, and
writes re-export module stubs and a manifest when configured.

Example:
  assetpipe build
  assetpipe build --project ./web --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(projectDir, dryRun)
		},
	}

	cmd.Flags().StringVarP(&projectDir, "project", "p", ".", "Project root containing assetpipe.config.yml")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve names and paths without writing anything")

	return cmd
}

func runBuild(projectDir string, dryRun bool) error {
	cfg, err := loadProjectConfig(projectDir)
	if err != nil {
		return err
	}

	var sink emitter.Emitter
	if dryRun {
		sink = emitter.NewMemory()
	} else {
		sink = emitter.NewFS(filepath.Join(projectDir, cfg.OutputDir))
	}

	if dryRun {
		// A dry run must not write stubs or the manifest either.
		cfg.ModuleDir = ""
		cfg.Manifest = ""
	}

	result, err := pipeline.New(projectDir, cfg, sink, getLogger()).Run()
	if err != nil {
		return err
	}

	log.Infof("✓ Processed %d asset(s), skipped %d file(s)", result.Processed, result.Skipped)
	if dryRun {
		log.Info("Dry run: nothing was written")
	}
	return nil
}

func loadProjectConfig(projectDir string) (*config.Config, error) {
	cfg, err := config.Load(projectDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no %s found in %s; run 'assetpipe init' to create one", config.ConfigFileName, projectDir)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
