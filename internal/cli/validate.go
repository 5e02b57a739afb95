package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdejongh/diffnorris/pkg/config"
	"github.com/sdejongh/diffnorris/pkg/logging"
	"github.com/sdejongh/diffnorris/pkg/models"
	"github.com/sdejongh/diffnorris/pkg/objdiff"
)

// validateDiffFlags validates the diff command flags and input paths
func validateDiffFlags(leftPath, rightPath string) error {
	for _, path := range []string{leftPath, rightPath} {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", path)
		}
		if err != nil {
			return fmt.Errorf("failed to access input file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("input is a directory, not a file: %s", path)
		}
	}

	leftAbs, err := filepath.Abs(leftPath)
	if err != nil {
		return fmt.Errorf("failed to resolve left path: %w", err)
	}
	rightAbs, err := filepath.Abs(rightPath)
	if err != nil {
		return fmt.Errorf("failed to resolve right path: %w", err)
	}
	if leftAbs == rightAbs {
		return fmt.Errorf("left and right cannot be the same file: %s", leftAbs)
	}

	if diffFlags.MaxDepth < 0 {
		return fmt.Errorf("invalid max depth: %d (must be zero or positive)", diffFlags.MaxDepth)
	}

	validFormats := map[string]bool{"human": true, "json": true, "yaml": true}
	if diffFlags.Output != "" && !validFormats[diffFlags.Output] {
		return fmt.Errorf("invalid output format: %s (valid: human, json, yaml)", diffFlags.Output)
	}
	if diffFlags.Report != "" && !validFormats[diffFlags.ReportFormat] {
		return fmt.Errorf("invalid report format: %s (valid: human, json, yaml)", diffFlags.ReportFormat)
	}

	if _, err := models.ParseOptions(diffFlags.Compare); err != nil {
		return err
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if diffFlags.MaxDepth > 0 {
		cfg.Diff.MaxDepth = diffFlags.MaxDepth
	}

	if diffFlags.AllowTypeMismatch {
		cfg.Diff.AllowTypeMismatch = true
	}

	if len(diffFlags.Compare) > 0 {
		cfg.Diff.Compare = diffFlags.Compare
	}

	if len(diffFlags.Ignore) > 0 {
		cfg.Ignore = append(cfg.Ignore, diffFlags.Ignore...)
	}

	if diffFlags.Output != "" {
		cfg.Output.Format = diffFlags.Output
	}

	if diffFlags.NoColor {
		cfg.Output.Color = false
	}

	if diffFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = diffFlags.LogFile
		cfg.Logging.Format = diffFlags.LogFormat
		cfg.Logging.Level = diffFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Verbose mode lowers the log level
	if globalFlags.Verbose {
		cfg.Logging.Level = "debug"
	}
}

// buildDiffer creates a configured differ from the configuration
func buildDiffer(cfg *config.Config) (*objdiff.Differ, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	d := objdiff.New()
	d.MaxDepth = cfg.Diff.MaxDepth
	d.AllowTypeMismatch = cfg.Diff.AllowTypeMismatch
	d.Options = opts
	d.Ignore = models.NewIgnoreFilter(cfg.Ignore...)

	return d, nil
}

// newLogger creates a logger from the logging configuration
func newLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled || cfg.Logging.File == "" {
		return logging.NewNullLogger(), nil
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   cfg.Logging.File,
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}
