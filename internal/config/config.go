// Package config handles TOML-based configuration loading and validation.
// Configuration is parsed as data only — service overrides are descriptors,
// never code.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"unfurl/internal/httputil"
)

// ServiceOverride is a caller-supplied service descriptor from the config
// file. Pattern is compiled at registry-build time; entries that fail
// validation there are skipped, never fatal.
type ServiceOverride struct {
	Pattern  string `toml:"pattern"`
	EmbedURL string `toml:"embed_url"`
	Markup   string `toml:"markup"`
	Height   int    `toml:"height"`
	Width    int    `toml:"width"`
}

// Config holds all application configuration.
type Config struct {
	// Endpoint is the metadata-extraction service URL. Empty means scrape
	// target pages directly.
	Endpoint string `toml:"endpoint"`

	// Enabled restricts the built-in service table to the named entries.
	// Empty means all defaults.
	Enabled []string `toml:"enabled"`

	History        bool `toml:"history"`
	Debug          bool `toml:"debug"`
	TimeoutSeconds int  `toml:"timeout_seconds"`

	// Services maps service names to overrides or new registrations.
	Services map[string]ServiceOverride `toml:"services"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		History:        true,
		TimeoutSeconds: 30,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "unfurl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "unfurl"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults. A missing config
// file returns defaults.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Endpoint != "" {
		if err := httputil.ValidateEndpoint(c.Endpoint); err != nil {
			return fmt.Errorf("endpoint: %w", err)
		}
	}
	if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 120 {
		return fmt.Errorf("timeout_seconds must be between 1 and 120, got %d", c.TimeoutSeconds)
	}
	return nil
}

// HistoryPath returns the path to the history file.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "unfurl", "history.tsv"), nil
}
