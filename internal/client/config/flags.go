package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/watchb/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   base URL of the WatchB API (default from Config)
//	-t int      access token lifetime in seconds (default from Config)
//	-d string   path of the local cache database (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendHost, "b", cfg.BackendHost, "base URL of the WatchB API")
	tokenLifetime := fs.Int("t", int(cfg.AccessTokenLifetime.Seconds()), "access token lifetime (in seconds)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path of the local cache database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenLifetime = time.Duration(*tokenLifetime) * time.Second
}
