// Package config loads runtime configuration for the posterm CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-d string   path of the local database file
//	-e string   directory for exported reports
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:8080/api",
//	  "request_timeout": "10s",
//	  "database_path": "posterm.db",
//	  "export_dir": "exports"
//	}
//
// Primary API
//
//   - type Config                     — holds ServerBaseURL, RequestTimeout, DatabasePath and ExportDir
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
