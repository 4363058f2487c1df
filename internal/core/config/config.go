// Package config handles configuration loading and validation for tasktidy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatPreview = "preview"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the application configuration.
type Config struct {
	// Format is the default output format: text, json or preview.
	Format string `yaml:"format" toml:"format"`
	// Color controls label styling in text output: auto, always or never.
	Color string `yaml:"color" toml:"color"`
	// HideDetails omits items nested deeper than the given depth. Unset
	// renders every item.
	HideDetails *int `yaml:"hide_details" toml:"hide_details"`
	// Theme is the glamour style used by the preview format.
	Theme string `yaml:"theme" toml:"theme"`
	// Width is the wrap width used by the preview format.
	Width int `yaml:"width" toml:"width"`
	// Ignore lists doublestar patterns excluded when expanding path arguments.
	Ignore []string `yaml:"ignore" toml:"ignore"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Format: FormatText,
		Color:  ColorAuto,
		Theme:  "auto",
		Width:  80,
		Ignore: []string{},
	}
}

// Load reads configuration from the given path and validates it. TOML is
// used when the file has a .toml extension, YAML otherwise. If configPath is
// empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation. The result may hold invalid values, so
// callers must run Validate or ValidateDeep before using it.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := unmarshal(configPath, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	return &cfg, nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Format == "" {
		c.Format = defaults.Format
	}
	if c.Color == "" {
		c.Color = defaults.Color
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Width == 0 {
		c.Width = defaults.Width
	}
	if c.Ignore == nil {
		c.Ignore = defaults.Ignore
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !IsValidFormat(c.Format) {
		return fmt.Errorf("format must be one of text, json, preview; got %q", c.Format)
	}

	if !IsValidColor(c.Color) {
		return fmt.Errorf("color must be one of auto, always, never; got %q", c.Color)
	}

	if c.HideDetails != nil && *c.HideDetails < 0 {
		return fmt.Errorf("hide_details cannot be negative")
	}

	if c.Width < 0 {
		return fmt.Errorf("width cannot be negative")
	}

	return nil
}

// IsValidFormat checks if format is a supported output format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatPreview:
		return true
	default:
		return false
	}
}

// IsValidColor checks if mode is a supported color mode.
func IsValidColor(mode string) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}
