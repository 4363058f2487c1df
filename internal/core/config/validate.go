package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/tasktidy/internal/core/render"
)

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility, ignore pattern syntax and the preview theme.
// The configPath argument specifies the config file location to validate
// (empty string skips the config file check). This calls Validate() first
// for basic structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateIgnore(),
		criterio.Run("theme", c.Theme, previewThemeExists),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateIgnore() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Ignore {
		if pattern == "" {
			errs = errs.Append(fmt.Sprintf("ignore[%d]", i), fmt.Errorf("pattern cannot be empty"))
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("ignore[%d]", i), fmt.Errorf("invalid pattern %q", pattern))
		}
	}
	return errs.ToError()
}

// previewThemeExists validates that the theme names a glamour style.
func previewThemeExists(theme string) error {
	if render.IsPreviewStyle(theme) {
		return nil
	}
	return fmt.Errorf("unknown theme %q (available: %v)", theme, render.PreviewStyles())
}
