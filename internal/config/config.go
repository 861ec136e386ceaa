// Package config defines service configuration structures and loading.
package config

import (
	"github.com/bottoscon/consched/internal/domain/chrono"
	"github.com/bottoscon/consched/internal/domain/signup"
)

// Config contains process configuration. The column contract, day
// names, and convention dates change per convention year; everything
// here is supplied externally, never computed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SheetURL is the signup sheet's CSV export URL.
	SheetURL string `koanf:"sheet_url"`

	// FetchTimeoutSeconds bounds one sheet retrieval.
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds"`

	// CacheTTLSeconds is how long a snapshot is served before a
	// read triggers a rebuild.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// HeaderRows is the number of leading instruction rows to skip.
	HeaderRows int `koanf:"header_rows"`

	// Days lists the recognized convention days in order.
	Days []string `koanf:"days"`

	// StartDate is the calendar date of the first convention day,
	// "YYYY-MM-DD". It anchors composed ICS timestamps.
	StartDate string `koanf:"start_date"`

	// RefreshCron, when set, schedules unconditional refreshes from
	// the process bootstrap (e.g. "0 * * * *"). Empty disables it;
	// the cache itself stays purely request-driven.
	RefreshCron string `koanf:"refresh_cron"`

	// Columns is the positional contract for sheet rows.
	Columns signup.Columns `koanf:"columns"`
}

// New returns a Config holding the defaults for the current year.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8080",
		FetchTimeoutSeconds: 10,
		CacheTTLSeconds:     3600,
		HeaderRows:          2,
		Days:                chrono.DefaultDays,
		StartDate:           "2025-11-06",
		Columns:             signup.DefaultColumns(),
	}
}
