// Package config loads and watches the postdeck configuration file.
// The file is optional YAML; every field has a default so a missing file
// yields a fully usable config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"postdeck/internal/logging"
	"postdeck/internal/placeholder"
)

// DefaultFileName is looked up in the user's home directory when no
// explicit --config path is given.
const DefaultFileName = ".postdeck.yaml"

// StateDirName holds logs and other operator artifacts, never dashboard
// data (which is transient by design).
const StateDirName = ".postdeck"

// Config is the full application configuration.
type Config struct {
	// APIBaseURL is the demo API instance to talk to.
	APIBaseURL string `yaml:"api_base_url"`

	// TimeoutSeconds bounds every remote request.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// PageSize is the number of posts per pagination page.
	PageSize int `yaml:"page_size"`

	// Theme selects the color scheme: auto, light, or dark.
	Theme string `yaml:"theme"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig mirrors logging.Settings in YAML form.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:     placeholder.DefaultBaseURL,
		TimeoutSeconds: 15,
		PageSize:       5,
		Theme:          "auto",
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// DefaultPath returns ~/.postdeck.yaml, or just the file name if the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// StateDir returns the directory for logs and other operator artifacts.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return StateDirName
	}
	return filepath.Join(home, StateDirName)
}

// Load reads the config file at path. A missing file is not an error: the
// defaults come back unchanged. Unset fields inherit their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	logging.Config("loaded config from %s", path)
	return cfg, nil
}

// Validate rejects configurations the rest of the app cannot run with.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	switch c.Theme {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("theme must be auto, light, or dark, got %q", c.Theme)
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoggingSettings converts the YAML logging section for logging.Initialize.
func (c Config) LoggingSettings() logging.Settings {
	return logging.Settings{
		DebugMode:  c.Logging.DebugMode,
		Level:      c.Logging.Level,
		Categories: c.Logging.Categories,
	}
}
