// Package cli implements the scanner command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/buildinfo"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/cache"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/config"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/enrich"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/integrations/github"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/scan"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "scanner"

	// defaultConfigFile is looked up in the working directory when
	// --config is not given. A missing file falls back to defaults.
	defaultConfigFile = "scanner.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "scanner",
		Short:        "Scanner discovers and scores testing resources on GitHub",
		Long:         `Scanner searches GitHub for software-testing tools and libraries, enriches each repository with metadata, grades it on a 100-point quality scale, and publishes the results as a static website. Each scan invocation covers one category, so a full pass can be spread across many runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to scanner.toml (default: ./scanner.toml if present)")

	// Register all subcommands
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Wiring Factories
// =============================================================================

// loadConfig resolves the effective configuration. An explicit --config
// path must exist; the implicit default may be absent.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	return config.Load(path)
}

// newStore opens the configured state backend.
func (c *CLI) newStore(ctx context.Context, cfg *config.Config) (scan.Store, error) {
	if cfg.StateBackend == "mongo" {
		return store.NewMongoStore(ctx, cfg.MongoURL)
	}
	return store.NewFileStore(cfg.DataDir)
}

// newCoordinator wires the full scan pipeline for one invocation.
func (c *CLI) newCoordinator(ctx context.Context, cfg *config.Config, st scan.Store, selector scan.Selector) (*scan.Coordinator, error) {
	httpCache, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	gh := github.NewClient(cfg.GitHubToken, httpCache, cfg.CacheTTL.Std())
	enricher := enrich.New(gh, c.Logger)
	executor := scan.NewExecutor(gh, enricher, cfg.Limits, c.Logger)
	return scan.NewCoordinator(st, executor, selector, cfg, c.Logger), nil
}

// newCache picks the HTTP cache backend: disabled, shared redis, or the
// default file cache. Cache setup failures degrade to no caching rather
// than blocking the scan.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, falling back to file cache", "error", err)
		} else {
			return rc, nil
		}
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/scanner/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Formatting Helpers
// =============================================================================

// formatDuration rounds for display.
func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

// formatTime renders a timestamp for tables, with a stable "never" for
// the zero value.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}
