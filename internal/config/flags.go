package config

import (
	"flag"
	"os"
	"time"

	"nutridiary/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory (default from Config)
//	-db string  database file path (default from Config)
//	-s string   seed asset path (default from Config)
//	-t int      session lifetime in hours (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-db", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "database file path")
	fs.StringVar(&cfg.SeedAssetPath, "s", cfg.SeedAssetPath, "seed asset path")
	sessionTTLHours := fs.Int("t", int(cfg.SessionTTL.Hours()), "session lifetime (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionTTL = time.Duration(*sessionTTLHours) * time.Hour
}
