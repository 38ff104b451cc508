// Package config loads runtime configuration for the WatchB CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the WatchB API
//	-t int      access token lifetime (seconds)
//	-d string   path of the local cache database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5m" or integer nanoseconds:
//
//	{
//	  "backend_host": "http://localhost:8000",
//	  "access_token_lifetime": "5m",
//	  "movie_cache_ttl": "24h",
//	  "database_dsn": "watchb.db"
//	}
//
// Primary API
//
//   - type Config                     — holds the runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
