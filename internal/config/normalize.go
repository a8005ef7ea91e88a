package config

import (
	"fmt"
	"os"
	"strings"

	"sindex/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizeIndex(); err != nil {
		return err
	}
	c.normalizeScan()
	return c.normalizeLogging()
}

func (c *Config) normalizeIndex() error {
	c.Index.Path = strings.TrimSpace(c.Index.Path)
	if c.Index.Path == "" {
		if value, ok := os.LookupEnv(IndexEnvVar); ok && strings.TrimSpace(value) != "" {
			c.Index.Path = strings.TrimSpace(value)
		} else {
			c.Index.Path = defaultIndexPath
		}
	}
	var err error
	if c.Index.Path, err = expandPath(c.Index.Path); err != nil {
		return fmt.Errorf("index.path: %w", err)
	}

	lang := strings.TrimSpace(c.Index.DefaultLanguage)
	if lang == "" {
		lang = defaultLanguage
	}
	if iso := language.ToISO2(lang); iso != "" {
		lang = iso
	}
	c.Index.DefaultLanguage = lang
	return nil
}

func (c *Config) normalizeScan() {
	if len(c.Scan.ExtraExtensions) == 0 {
		c.Scan.ExtraExtensions = nil
		return
	}
	seen := make(map[string]struct{}, len(c.Scan.ExtraExtensions))
	normalized := make([]string, 0, len(c.Scan.ExtraExtensions))
	for _, ext := range c.Scan.ExtraExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		ext = "." + ext
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		normalized = append(normalized, ext)
	}
	c.Scan.ExtraExtensions = normalized
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	return nil
}
