package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sindex/internal/config"
	"sindex/internal/indexstore"
	"sindex/internal/language"
	"sindex/internal/logging"
	"sindex/internal/seriesindex"
)

type commandContext struct {
	configFlag *string
	indexFlag  *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(configFlag, indexFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		indexFlag:  indexFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.indexFlag != nil && strings.TrimSpace(*c.indexFlag) != "" {
			expanded, err := config.ExpandPath(strings.TrimSpace(*c.indexFlag))
			if err != nil {
				c.configErr = fmt.Errorf("resolve index path: %w", err)
				return
			}
			cfg.Index.Path = expanded
		}
		if c.verbose != nil && *c.verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

func (c *commandContext) store() (*indexstore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return indexstore.Open(cfg.Index.Path,
		indexstore.WithLogger(c.logger),
		indexstore.WithBackup(cfg.Index.Backup),
		indexstore.WithIndexOptions(
			seriesindex.WithDefaultLanguage(cfg.Index.DefaultLanguage),
			seriesindex.WithVideoExtensions(cfg.Scan.ExtraExtensions...),
		),
	), nil
}

// lockContext bounds how long a command waits for the index lock.
func (c *commandContext) lockContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := c.ensureConfig()
	if err != nil || cfg.LockTimeout() <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, cfg.LockTimeout())
}

// language picks the episode language: an explicit flag wins, then a
// language named in the release text, then the configured default.
func (c *commandContext) language(flag, text string) (string, error) {
	if strings.TrimSpace(flag) != "" {
		lang, err := language.Normalize(flag)
		if err != nil {
			return "", err
		}
		return lang, nil
	}
	if lang, ok := language.Detect(text); ok {
		return lang, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Index.DefaultLanguage, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
