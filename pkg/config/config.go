// Package config loads process configuration from defaults, an optional
// YAML file, and environment variables.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the knobs shared by the CLI and embedding applications.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CacheDir is where fetched pages persist between runs. Empty means
	// the platform user cache directory.
	CacheDir string `koanf:"cache_dir"`

	// CacheTTL bounds how long a fetched profile page is reused.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// FetchTimeout is the per-request HTTP timeout.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// BatchWorkers bounds concurrent profile loads when rating a roster.
	BatchWorkers int `koanf:"batch_workers"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		CacheTTL:     6 * time.Hour,
		FetchTimeout: 5 * time.Second,
		BatchWorkers: 4,
	}
}

// Load builds a Config by layering defaults, an optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DIVESCOUT_CONFIG is set
//  3. env (prefix DIVESCOUT_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DIVESCOUT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: DIVESCOUT_LOG_LEVEL, DIVESCOUT_CACHE_TTL, ...
	// mapped to the flat koanf keys on the struct.
	envProvider := env.Provider("DIVESCOUT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "divescout_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.CacheTTL < 0 {
		return nil, errors.New("cache_ttl must not be negative")
	}
	if cfg.BatchWorkers < 1 {
		return nil, errors.New("batch_workers must be at least 1")
	}
	return &cfg, nil
}
