// Package config assembles runtime settings for the posterm client from
// defaults, an optional JSON file and command-line flags, in that order.
package config

import "time"

// Config holds runtime settings for the posterm client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend API, including the /api prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: path of the local SQLite database holding session data.
//   - ExportDir: directory (under the working directory) for generated reports.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
	ExportDir      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "posterm.db"
	c.ExportDir = "exports"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
