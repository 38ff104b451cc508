package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/watchb/internal/flagx"
	"github.com/dmitrijs2005/watchb/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "5m" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	BackendHost         string         `json:"backend_host"`
	AccessTokenLifetime timex.Duration `json:"access_token_lifetime"`
	MovieCacheTTL       timex.Duration `json:"movie_cache_ttl"`
	DatabaseDSN         string         `json:"database_dsn"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Zero-valued JSON fields leave the corresponding Config values as they
// were, so a partial file overrides only what it names. Panics on read or
// unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendHost != "" {
		cfg.BackendHost = jc.BackendHost
	}
	if jc.AccessTokenLifetime.Duration != 0 {
		cfg.AccessTokenLifetime = time.Duration(jc.AccessTokenLifetime.Duration)
	}
	if jc.MovieCacheTTL.Duration != 0 {
		cfg.MovieCacheTTL = time.Duration(jc.MovieCacheTTL.Duration)
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
}
