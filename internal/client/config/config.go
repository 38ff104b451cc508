package config

import "time"

// Config holds runtime settings for the WatchB CLI.
//
// Fields:
//   - BackendHost: base URL of the WatchB API (scheme://host[:port]).
//   - AccessTokenLifetime: the backend's access-token lifetime hint, used to
//     schedule the proactive refresh.
//   - MovieCacheTTL: how long locally cached movie details stay fresh.
//   - DatabaseDSN: path of the local sqlite cache database.
type Config struct {
	BackendHost         string
	AccessTokenLifetime time.Duration
	MovieCacheTTL       time.Duration
	DatabaseDSN         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendHost = "http://localhost:8000"
	c.AccessTokenLifetime = 5 * time.Minute
	c.MovieCacheTTL = 24 * time.Hour
	c.DatabaseDSN = "watchb.db"
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
