// Package config loads scanner configuration.
//
// Configuration comes from three layers, later layers overriding earlier:
//
//  1. Built-in defaults (including the default category set)
//  2. An optional TOML file (categories, scan limits, output paths)
//  3. Environment variables, with a .env file loaded first
//     (GITHUB_TOKEN, SCANNER_DATA_DIR, SCANNER_STATE_BACKEND,
//     SCANNER_MONGO_URL, SCANNER_REDIS_URL)
//
// Categories and limits are immutable once loaded; each invocation reads
// them fresh.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/errors"
)

// Category is a fixed topical bucket with its own search terms.
type Category struct {
	ID          string   `toml:"id"`
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	SearchTerms []string `toml:"search_terms"`
	Languages   []string `toml:"languages"`
}

// Limits bounds a single category scan.
type Limits struct {
	// MinStars filters search results below this star count.
	MinStars int `toml:"min_stars"`

	// PushedWithinDays filters repositories not pushed to recently.
	PushedWithinDays int `toml:"pushed_within_days"`

	// MaxPerSearch caps results requested per search term.
	MaxPerSearch int `toml:"max_per_search"`

	// MaxPerCategory caps repositories accumulated per category scan.
	MaxPerCategory int `toml:"max_per_category"`

	// CategoryTimeout bounds the wall-clock time of one category scan.
	CategoryTimeout Duration `toml:"category_timeout"`

	// RequestDelay is the pause between consecutive searches.
	RequestDelay Duration `toml:"request_delay"`
}

// Config is the root configuration object.
type Config struct {
	Categories []Category `toml:"categories"`
	Limits     Limits     `toml:"limits"`

	// DataDir holds the persisted repository map and scan status.
	DataDir string `toml:"data_dir"`

	// SiteDir is the static site output directory.
	SiteDir string `toml:"site_dir"`

	// StateBackend selects the state store: "file" (default) or "mongo".
	StateBackend string `toml:"state_backend"`

	// CacheTTL bounds how long upstream API responses are reused.
	CacheTTL Duration `toml:"cache_ttl"`

	// Populated from environment only, never from the TOML file.
	GitHubToken string `toml:"-"`
	MongoURL    string `toml:"-"`
	RedisURL    string `toml:"-"`
}

// Duration wraps time.Duration for TOML decoding ("5m", "500ms").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default limit values, applied wherever the file leaves a limit unset.
const (
	DefaultMinStars         = 100
	DefaultPushedWithinDays = 365
	DefaultMaxPerSearch     = 20
	DefaultMaxPerCategory   = 50
	DefaultCategoryTimeout  = 5 * time.Minute
	DefaultRequestDelay     = 500 * time.Millisecond
	DefaultCacheTTL         = 6 * time.Hour
)

// Load reads configuration from the given TOML file path. An empty path
// loads defaults only. A .env file in the working directory is applied
// before reading environment variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:      "data",
		SiteDir:      "site",
		StateBackend: "file",
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", path)
		}
	}

	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Limits.MinStars == 0 {
		c.Limits.MinStars = DefaultMinStars
	}
	if c.Limits.PushedWithinDays == 0 {
		c.Limits.PushedWithinDays = DefaultPushedWithinDays
	}
	if c.Limits.MaxPerSearch == 0 {
		c.Limits.MaxPerSearch = DefaultMaxPerSearch
	}
	if c.Limits.MaxPerCategory == 0 {
		c.Limits.MaxPerCategory = DefaultMaxPerCategory
	}
	if c.Limits.CategoryTimeout == 0 {
		c.Limits.CategoryTimeout = Duration(DefaultCategoryTimeout)
	}
	if c.Limits.RequestDelay == 0 {
		c.Limits.RequestDelay = Duration(DefaultRequestDelay)
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = Duration(DefaultCacheTTL)
	}
}

func (c *Config) applyEnv() {
	c.GitHubToken = os.Getenv("GITHUB_TOKEN")
	c.MongoURL = os.Getenv("SCANNER_MONGO_URL")
	c.RedisURL = os.Getenv("SCANNER_REDIS_URL")

	if v := os.Getenv("SCANNER_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("SCANNER_STATE_BACKEND"); v != "" {
		c.StateBackend = v
	}
}

func (c *Config) validate() error {
	if len(c.Categories) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one category is required")
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" {
			return errors.New(errors.ErrCodeInvalidCategory, "category with empty id")
		}
		if seen[cat.ID] {
			return errors.New(errors.ErrCodeInvalidCategory, "duplicate category id: %s", cat.ID)
		}
		seen[cat.ID] = true
		if len(cat.SearchTerms) == 0 {
			return errors.New(errors.ErrCodeInvalidCategory, "category %s has no search terms", cat.ID)
		}
	}
	switch c.StateBackend {
	case "file", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown state backend: %s", c.StateBackend)
	}
	return nil
}

// Category returns the category with the given ID, or nil if absent.
func (c *Config) Category(id string) *Category {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}
