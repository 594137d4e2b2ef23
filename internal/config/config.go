// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// Config represents the skillboard configuration. It can be loaded from a JSON or YAML
// file and overlaid with SKILLBOARD_* environment variables. All fields are optional;
// missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Data sources (mutually exclusive)
	Dataset     string `json:"dataset,omitempty" yaml:"dataset,omitempty" env:"SKILLBOARD_DATASET"`           // Path to a JSON or YAML dataset file
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty" env:"DATABASE_URL"`      // PostgreSQL connection URL
	CharacterID int64  `json:"character_id,omitempty" yaml:"character_id,omitempty" env:"SKILLBOARD_CHARACTER_ID"` // Character whose skills are read from the database

	// Presentation
	Templates string `json:"templates,omitempty" yaml:"templates,omitempty" env:"SKILLBOARD_TEMPLATES"` // Directory overriding the built-in templates
	Title     string `json:"title,omitempty" yaml:"title,omitempty" env:"SKILLBOARD_TITLE"`             // Page title

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty" env:"SKILLBOARD_PORT"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty" env:"SKILLBOARD_VERBOSE"` // Debug logging and summaries
}

// LoadConfig loads configuration from a JSON or YAML file, picked by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// LoadEnv overlays environment variables onto cfg. Variables that are not set leave the
// existing value alone.
func LoadEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads an optional config file and then applies the environment on top of it.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := LoadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Dataset != "" && c.DatabaseURL != "" {
		return fmt.Errorf("config error: 'dataset' and 'database_url' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CharacterID < 0 {
		return fmt.Errorf("config error: 'character_id' must be non-negative")
	}

	if c.Dataset != "" && !isURL(c.Dataset) {
		if _, err := os.Stat(c.Dataset); os.IsNotExist(err) {
			return fmt.Errorf("config error: dataset file not found: %s", c.Dataset)
		}
	}

	if c.Templates != "" {
		info, err := os.Stat(c.Templates)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: templates directory not found: %s", c.Templates)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: templates is not a directory: %s", c.Templates)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Dataset == "" {
		result.Dataset = defaults.Dataset
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Templates == "" {
		result.Templates = defaults.Templates
	}
	if result.Title == "" {
		result.Title = defaults.Title
	}
	if result.CharacterID == 0 {
		result.CharacterID = defaults.CharacterID
	}

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// isURL reports whether a dataset location is fetched over HTTP rather than read from disk.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
