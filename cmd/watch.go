package cmd

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/assetpipe/pkg/config"
	"github.com/grovetools/assetpipe/pkg/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var projectDir string
	var debounceMs int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the asset tree and rebuild on changes",
		Long: `Watches the configured context directory and re-runs the build when
assets change. Output, module, and manifest paths are ignored so the
build's own writes never retrigger it.

Example:
  assetpipe watch --project ./web --debounce 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(projectDir, time.Duration(debounceMs)*time.Millisecond)
		},
	}

	cmd.Flags().StringVarP(&projectDir, "project", "p", ".", "Project root containing assetpipe.config.yml")
	cmd.Flags().IntVar(&debounceMs, "debounce", 100, "Debounce interval in milliseconds")

	return cmd
}

func runWatch(projectDir string, debounce time.Duration) error {
	cfg, err := loadProjectConfig(projectDir)
	if err != nil {
		return err
	}

	w, err := watcher.New()
	if err != nil {
		return err
	}
	defer w.Close()

	contextDir := filepath.Join(projectDir, cfg.Context)
	if err := w.AddRecursive(contextDir); err != nil {
		return err
	}

	// Initial build so the output is current before we start waiting.
	if err := runBuild(projectDir, false); err != nil {
		return err
	}
	log.Infof("Watching %s for changes", contextDir)

	ignored := ignoredPrefixes(projectDir, cfg)

	var timer *time.Timer
	rebuild := func() {
		if err := runBuild(projectDir, false); err != nil {
			log.Errorf("Rebuild failed: %v", err)
		}
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			w.HandleNewDirectory(event)
			if !isRelevant(event, cfg, ignored) {
				continue
			}
			log.Debugf("Change detected: %s", event.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, rebuild)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("Watch error: %v", err)
		}
	}
}

// ignoredPrefixes returns the paths the build itself writes to.
func ignoredPrefixes(projectDir string, cfg *config.Config) []string {
	var prefixes []string
	for _, dir := range []string{cfg.OutputDir, cfg.ModuleDir, cfg.Manifest} {
		if dir != "" {
			prefixes = append(prefixes, filepath.Clean(filepath.Join(projectDir, dir)))
		}
	}
	return prefixes
}

func isRelevant(event fsnotify.Event, cfg *config.Config, ignored []string) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	clean := filepath.Clean(event.Name)
	for _, prefix := range ignored {
		if clean == prefix || strings.HasPrefix(clean, prefix+string(filepath.Separator)) {
			return false
		}
	}
	return cfg.Match(event.Name) != nil
}
