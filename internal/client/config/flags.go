package config

import (
	"flag"
	"os"

	"github.com/nutricare/nutricare-client/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string     REST API base URL
//	-t duration   default request timeout, e.g. 60s
//	-d string     path to the local SQLite database
//	-l string     log level
//
// Only these flags are read from os.Args; the rest are filtered out with
// flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], "a", "t", "d", "l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "REST API base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "default request timeout")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
