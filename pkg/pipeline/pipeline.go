// Package pipeline walks a project's context directory, runs the
// loader on every file claimed by a configured rule, and records the
// results in a manifest. It plays the role a bundler plays when the
// loader runs embedded in a larger build.
package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/assetpipe/pkg/config"
	"github.com/grovetools/assetpipe/pkg/emitter"
	"github.com/grovetools/assetpipe/pkg/interpolate"
	"github.com/grovetools/assetpipe/pkg/loader"
	"github.com/grovetools/assetpipe/pkg/manifest"
)

// Pipeline processes one project according to its configuration.
type Pipeline struct {
	root   string
	cfg    *config.Config
	sink   emitter.Emitter
	logger *logrus.Logger
}

// Result summarizes a pipeline run.
type Result struct {
	Manifest  *manifest.Manifest
	Processed int
	Skipped   int
}

// New creates a pipeline for the project rooted at root. Artifacts are
// registered with sink; where sink places them is the caller's choice.
func New(root string, cfg *config.Config, sink emitter.Emitter, logger *logrus.Logger) *Pipeline {
	return &Pipeline{root: root, cfg: cfg, sink: sink, logger: logger}
}

// Run walks the context directory and processes every matching file.
// Each invocation is independent: the manifest is computed fresh and
// nothing persists between runs.
func (p *Pipeline) Run() (*Result, error) {
	contextDir := filepath.Join(p.root, p.cfg.Context)
	m := &manifest.Manifest{GeneratedAt: time.Now().UTC()}
	result := &Result{Manifest: m}

	// The output and module directories may live inside the context;
	// walking into them would reprocess our own output.
	skipDirs := make(map[string]bool)
	for _, dir := range []string{p.cfg.OutputDir, p.cfg.ModuleDir} {
		if dir != "" {
			skipDirs[filepath.Clean(filepath.Join(p.root, dir))] = true
		}
	}

	err := filepath.WalkDir(contextDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip inaccessible entries
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != contextDir {
				return filepath.SkipDir
			}
			if skipDirs[filepath.Clean(path)] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == config.ConfigFileName {
			return nil
		}
		rule := p.cfg.Match(path)
		if rule == nil {
			result.Skipped++
			return nil
		}
		if err := p.processFile(contextDir, path, rule, m); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		result.Processed++
		return nil
	})
	if err != nil {
		return nil, err
	}

	if p.cfg.Manifest != "" {
		manifestPath := filepath.Join(p.root, p.cfg.Manifest)
		if err := os.MkdirAll(filepath.Dir(manifestPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create manifest directory: %w", err)
		}
		if err := m.Save(manifestPath); err != nil {
			return nil, fmt.Errorf("failed to write manifest: %w", err)
		}
	}
	return result, nil
}

func (p *Pipeline) processFile(contextDir, path string, rule *config.RuleConfig, m *manifest.Manifest) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	opts, err := p.ruleOptions(rule)
	if err != nil {
		return err
	}

	env := loader.NewEnvironment(contextDir, path, p.sink)
	res, err := loader.Resolve(content, opts, env)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(contextDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	artifact := manifest.Artifact{
		Source:      rel,
		Name:        res.Name,
		OutputPath:  res.OutputPath,
		PublicPath:  res.PublicPath,
		Size:        int64(len(content)),
		ContentHash: interpolate.ContentHash(content, interpolate.DefaultHashLength),
	}

	if p.cfg.ModuleDir != "" {
		stubPath := filepath.Join(p.root, p.cfg.ModuleDir, filepath.FromSlash(rel)+".js")
		if err := os.MkdirAll(filepath.Dir(stubPath), 0755); err != nil {
			return fmt.Errorf("failed to create module directory: %w", err)
		}
		if err := os.WriteFile(stubPath, []byte(res.Source+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write module stub: %w", err)
		}
		if relStub, err := filepath.Rel(p.root, stubPath); err == nil {
			artifact.ModulePath = filepath.ToSlash(relStub)
		}
	}

	m.Add(artifact)
	p.logger.Debugf("Processed %s -> %s", rel, res.OutputPath)
	return nil
}

// ruleOptions converts a file-config rule to loader options. Function
// policies are a Go-API-only feature; everything expressible in YAML is
// static.
func (p *Pipeline) ruleOptions(rule *config.RuleConfig) (*loader.Options, error) {
	opts := &loader.Options{
		Name:     rule.Name,
		EmitFile: rule.EmitFile,
		ESModule: rule.ESModule,
	}
	if rule.OutputPath != "" {
		opts.OutputPath = loader.StaticPath(rule.OutputPath)
	}
	publicPath := rule.PublicPath
	if publicPath == "" {
		publicPath = p.cfg.PublicPath
	}
	if publicPath != "" {
		opts.PublicPath = loader.StaticPath(publicPath)
	}
	if rule.Regexp != "" {
		re, err := regexp.Compile(rule.Regexp)
		if err != nil {
			return nil, fmt.Errorf("invalid regexp %q: %w", rule.Regexp, err)
		}
		opts.RegExp = re
	}
	return opts, nil
}
