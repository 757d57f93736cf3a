package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is prepended to every environment variable name.
const Prefix = "PQ"

// Config holds all daemon and CLI configuration loaded from environment
// variables.
type Config struct {
	// General
	Environment string `envconfig:"ENV" default:"production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Storage. Empty means ~/.productiviquest/productiviquest.db.
	DBPath string `envconfig:"DB"`

	// HTTP API
	ListenAddr string `envconfig:"LISTEN_ADDR" default:"127.0.0.1:7777"`

	// Tracking. Empty timezone means the host's local zone.
	Timezone         string        `envconfig:"TIMEZONE"`
	LivenessInterval time.Duration `envconfig:"LIVENESS_INTERVAL" default:"5s"`
	IdleThreshold    time.Duration `envconfig:"IDLE_THRESHOLD" default:"60s"`
	MinSession       time.Duration `envconfig:"MIN_SESSION" default:"5s"`
	TabCacheSize     int           `envconfig:"TAB_CACHE_SIZE" default:"512"`

	// Progression
	ExtendedAchievements bool `envconfig:"EXTENDED_ACHIEVEMENTS" default:"false"`

	// Optional integrations
	SlackWebhookURL string `envconfig:"SLACK_WEBHOOK_URL"`
	CategoriesFile  string `envconfig:"CATEGORIES_FILE"`
}

// Load reads configuration from PQ_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.LivenessInterval <= 0 {
		return fmt.Errorf("%s_LIVENESS_INTERVAL must be positive, got %s", Prefix, c.LivenessInterval)
	}
	if c.IdleThreshold <= 0 {
		return fmt.Errorf("%s_IDLE_THRESHOLD must be positive, got %s", Prefix, c.IdleThreshold)
	}
	if c.MinSession < 0 {
		return fmt.Errorf("%s_MIN_SESSION must not be negative, got %s", Prefix, c.MinSession)
	}
	if c.TabCacheSize <= 0 {
		return fmt.Errorf("%s_TAB_CACHE_SIZE must be positive, got %d", Prefix, c.TabCacheSize)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid %s_LOG_LEVEL %q: %w", Prefix, c.LogLevel, err)
	}
	return nil
}

// Development reports whether the daemon runs in a development environment.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Environment, "development") || strings.EqualFold(c.Environment, "dev")
}

// SlackEnabled returns true if a Slack incoming webhook is configured.
func (c *Config) SlackEnabled() bool {
	return c.SlackWebhookURL != ""
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Location resolves the calendar-day timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid %s_TIMEZONE %q: %w", Prefix, c.Timezone, err)
	}
	return loc, nil
}

// ResolveDBPath returns the configured database path or the default under
// the user's home directory.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".productiviquest", "productiviquest.db"), nil
}
