// Package config holds runtime settings for the nutridiary CLI and the
// layered loading pipeline: defaults, then JSON file, then environment
// (including a .env file), then command-line flags. Later sources win.
package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings for the diary.
//
// Fields:
//   - DataDir: directory for the database, key file and session file.
//   - DatabasePath: the local sqlite database file.
//   - SeedAssetPath: the pre-seeded product bundle copied on first launch;
//     empty or missing means the embedded schema script is used instead.
//   - SessionTTL: how long a login session stays valid.
type Config struct {
	DataDir       string
	DatabasePath  string
	SeedAssetPath string
	SessionTTL    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.DatabasePath = filepath.Join("data", "diary.db")
	c.SeedAssetPath = filepath.Join("assets", "db", "nutriscore.db")
	c.SessionTTL = 720 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
