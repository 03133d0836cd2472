package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../tools/schema-generator

const ConfigFileName = "assetpipe.config.yml"

// Config defines the structure of a project's asset pipeline settings.
type Config struct {
	Context    string       `yaml:"context,omitempty"`     // Source directory to walk, relative to the project root (default: ".")
	OutputDir  string       `yaml:"output_dir,omitempty"`  // Directory emitted artifacts are written to (default: "dist")
	ModuleDir  string       `yaml:"module_dir,omitempty"`  // Directory re-export module stubs are written to; empty disables stubs
	PublicPath string       `yaml:"public_path,omitempty"` // Default public path prefix for all rules
	Manifest   string       `yaml:"manifest,omitempty"`    // Manifest output file; empty disables the manifest
	Rules      []RuleConfig `yaml:"rules"`
}

// RuleConfig maps a set of file extensions to naming and emission settings.
type RuleConfig struct {
	Extensions []string `yaml:"extensions"`            // Extensions this rule claims, with leading dots (e.g. ".png")
	Name       string   `yaml:"name,omitempty"`        // Name template (default: "[contenthash].[ext]")
	OutputPath string   `yaml:"output_path,omitempty"` // Subdirectory within output_dir
	PublicPath string   `yaml:"public_path,omitempty"` // Per-rule public path prefix, overrides the global one
	Regexp     string   `yaml:"regexp,omitempty"`      // Pattern matched against the resource path for [N] placeholders
	EmitFile   *bool    `yaml:"emit_file,omitempty"`   // Whether to emit the artifact (default: true)
	ESModule   *bool    `yaml:"es_module,omitempty"`   // Generate ES module syntax (default: true)
}

// Load attempts to load an assetpipe.config.yml file from a given directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Context == "" {
		c.Context = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
}

// Validate checks the loaded configuration for mistakes that would
// otherwise surface as confusing mid-build failures.
func (c *Config) Validate() error {
	if len(c.Rules) == 0 {
		return fmt.Errorf("configuration has no rules; nothing would be processed")
	}
	for i, rule := range c.Rules {
		if len(rule.Extensions) == 0 {
			return fmt.Errorf("rule %d: extensions must not be empty", i)
		}
		for _, ext := range rule.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return fmt.Errorf("rule %d: extension %q must start with a dot", i, ext)
			}
		}
		if rule.Regexp != "" {
			if _, err := regexp.Compile(rule.Regexp); err != nil {
				return fmt.Errorf("rule %d: invalid regexp: %w", i, err)
			}
		}
	}
	return nil
}

// Match returns the first rule claiming the file's extension, or nil.
func (c *Config) Match(path string) *RuleConfig {
	for i := range c.Rules {
		if c.Rules[i].Matches(path) {
			return &c.Rules[i]
		}
	}
	return nil
}

// Matches reports whether the rule claims the file's extension.
// Extension comparison is case-insensitive.
func (r *RuleConfig) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range r.Extensions {
		if strings.ToLower(candidate) == ext {
			return true
		}
	}
	return false
}
