// Package config handles pyimports' own tool-level configuration file,
// .pyimportsrc.yml, which supplies CLI-default overrides. This is distinct
// from internal/layout's one-shot read of the analyzed project's own
// pyproject.toml metadata.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ToolConfig represents the .pyimportsrc.yml configuration file.
type ToolConfig struct {
	Version           int      `yaml:"version"`
	DefaultFormat     string   `yaml:"default_format"`
	ExcludeScripts    []string `yaml:"exclude_scripts"`
	MaxRank           *int     `yaml:"max_rank"`
	IncludeOrphans    bool     `yaml:"include_orphans"`
	IncludeNamespaces bool     `yaml:"include_namespace_packages"`
}

// Load loads tool configuration from .pyimportsrc.yml or .pyimportsrc.yaml.
// If explicitPath is provided (from --config), that file is loaded.
// Otherwise .pyimportsrc.yml then .pyimportsrc.yaml are looked up under dir.
// Returns nil (no error) if no config file is found.
func Load(dir string, explicitPath string) (*ToolConfig, error) {
	var configPath string

	if explicitPath != "" {
		configPath = explicitPath
	} else {
		ymlPath := filepath.Join(dir, ".pyimportsrc.yml")
		yamlPath := filepath.Join(dir, ".pyimportsrc.yaml")

		if _, err := os.Stat(ymlPath); err == nil {
			configPath = ymlPath
		} else if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			return nil, nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read tool config %s: %w", configPath, err)
	}

	cfg := &ToolConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse tool config %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tool config %s: %w", configPath, err)
	}

	return cfg, nil
}

// validFormats lists the formats the --format flag accepts.
var validFormats = map[string]bool{
	"":          true,
	"dot":       true,
	"mermaid":   true,
	"cytoscape": true,
	"list":      true,
	"html":      true,
}

// Validate checks that the ToolConfig values are valid.
func (c *ToolConfig) Validate() error {
	if c.Version != 0 && c.Version != 1 {
		return fmt.Errorf("unsupported config version %d (expected 1)", c.Version)
	}
	if !validFormats[c.DefaultFormat] {
		return fmt.Errorf("unknown default_format %q", c.DefaultFormat)
	}
	if c.MaxRank != nil && *c.MaxRank < 0 {
		return fmt.Errorf("max_rank must be >= 0, got %d", *c.MaxRank)
	}
	return nil
}
