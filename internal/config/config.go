// Package config loads the dashboard's optional YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Code Mentor configuration.
type Config struct {
	// Editor panel
	Editor EditorConfig `yaml:"editor"`

	// Simulated run
	Run RunConfig `yaml:"run"`

	// Catalog source
	Catalog CatalogConfig `yaml:"catalog"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Layout
	UI UIConfig `yaml:"ui"`
}

// EditorConfig configures the editor buffer.
type EditorConfig struct {
	// InitialCode replaces the built-in welcome snippet when set. An
	// explicit empty string starts with an empty buffer.
	InitialCode *string `yaml:"initial_code,omitempty"`
	Language    string  `yaml:"language"` // display only
}

// RunConfig configures the simulated run.
type RunConfig struct {
	Delay string `yaml:"delay"`
}

// CatalogConfig selects the catalog file; empty means the embedded one.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty disables logging
}

// UIConfig configures the dashboard layout.
type UIConfig struct {
	SidebarOpen bool `yaml:"sidebar_open"`
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultDir returns ~/.code-mentor.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".code-mentor"
	}
	return filepath.Join(home, ".code-mentor")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			Language: "javascript",
		},
		Run: RunConfig{
			Delay: "1s",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(DefaultDir(), "mentor.log"),
		},
		UI: UIConfig{
			SidebarOpen: true,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults only
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MENTOR_LANGUAGE"); v != "" {
		c.Editor.Language = v
	}
	if v := os.Getenv("MENTOR_RUN_DELAY"); v != "" {
		c.Run.Delay = v
	}
	if v := os.Getenv("MENTOR_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("MENTOR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	// MENTOR_LOG_FILE may be set to the empty string on purpose.
	if v, ok := os.LookupEnv("MENTOR_LOG_FILE"); ok {
		c.Logging.File = v
	}
}

// GetRunDelay returns the simulated run delay.
func (c *Config) GetRunDelay() time.Duration {
	d, err := time.ParseDuration(c.Run.Delay)
	if err != nil || d < 0 {
		return time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Run.Delay != "" {
		d, err := time.ParseDuration(c.Run.Delay)
		if err != nil {
			return fmt.Errorf("invalid run delay %q: %w", c.Run.Delay, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid run delay %q: must not be negative", c.Run.Delay)
		}
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}
