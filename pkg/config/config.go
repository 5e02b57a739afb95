package config

import (
	"github.com/sdejongh/diffnorris/pkg/models"
	"github.com/sdejongh/diffnorris/pkg/objdiff"
)

// Config represents the application configuration
type Config struct {
	Diff    DiffConfig    `yaml:"diff"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Ignore  []string      `yaml:"ignore"`
}

// DiffConfig holds comparison settings
type DiffConfig struct {
	// MaxDepth bounds recursion depth (0 = unlimited)
	MaxDepth int `yaml:"max_depth"`

	// AllowTypeMismatch permits comparing values of different types
	AllowTypeMismatch bool `yaml:"allow_type_mismatch"`

	// Compare lists the member categories to visit:
	// properties, fields, collections, all
	Compare []string `yaml:"compare"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human", "json" or "yaml"
	Color    bool   `yaml:"color"`    // Colorize human output
	Progress bool   `yaml:"progress"` // Show progress over multi-document streams
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Diff: DiffConfig{
			MaxDepth:          objdiff.DefaultMaxDepth,
			AllowTypeMismatch: false,
			Compare:           []string{"all"},
		},
		Output: OutputConfig{
			Format:   "human",
			Color:    true,
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
		Ignore: []string{},
	}
}

// Options converts the configured category names into an option set
func (c *Config) Options() (models.Options, error) {
	return models.ParseOptions(c.Diff.Compare)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Diff.MaxDepth < 0 {
		return &models.ValidationError{
			Field:   "diff.max_depth",
			Message: "must be zero or positive",
		}
	}

	if _, err := models.ParseOptions(c.Diff.Compare); err != nil {
		return &models.ValidationError{
			Field:   "diff.compare",
			Message: err.Error(),
		}
	}

	validFormats := map[string]bool{"human": true, "json": true, "yaml": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human', 'json' or 'yaml'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
