package config

import (
	"errors"
	"fmt"
	"slices"

	"sindex/internal/language"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateIndex(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateIndex() error {
	if c.Index.Path == "" {
		return errors.New("index.path must be set")
	}
	if _, err := language.Normalize(c.Index.DefaultLanguage); err != nil {
		return fmt.Errorf("index.default_language: %w", err)
	}
	if c.Index.DefaultLanguage == "" {
		return errors.New("index.default_language must be set")
	}
	if c.Index.LockTimeoutSeconds <= 0 {
		return errors.New("index.lock_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %v, got %q", logLevels, c.Logging.Level)
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %v, got %q", logFormats, c.Logging.Format)
	}
	if c.Logging.MaxSizeMB < 0 {
		return errors.New("logging.max_size_mb must not be negative")
	}
	if c.Logging.MaxBackups < 0 {
		return errors.New("logging.max_backups must not be negative")
	}
	return nil
}
