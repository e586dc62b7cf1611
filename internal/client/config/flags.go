package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/pdfdrop/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags. Only
// the flags known here are passed to the FlagSet.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-t", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "pdfdrop server base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "session database path")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "API call timeout")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
