package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CONSCHED_CONFIG is set
//  3. env (prefix CONSCHED_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CONSCHED_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CONSCHED_SHEET_URL, CONSCHED_CACHE_TTL_SECONDS, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("CONSCHED_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "consched_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.SheetURL == "" {
		return fmt.Errorf("%w: sheet_url must not be empty", ErrInvalidConfig)
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("%w: cache_ttl_seconds must be positive", ErrInvalidConfig)
	}
	if len(c.Days) == 0 {
		return fmt.Errorf("%w: days must not be empty", ErrInvalidConfig)
	}
	if _, err := c.StartTime(); err != nil {
		return fmt.Errorf("%w: start_date: %w", ErrInvalidConfig, err)
	}
	return nil
}

// StartTime parses StartDate as a calendar date.
func (c *Config) StartTime() (time.Time, error) {
	return time.Parse("2006-01-02", c.StartDate)
}

// CacheTTL returns the snapshot TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// FetchTimeout returns the per-fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
