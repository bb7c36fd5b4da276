package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present (existing process
// variables are not overwritten), so a local deployment can keep its paths
// next to the binary.
//
// Recognized variables:
//
//	NUTRIDIARY_DATA_DIR     directory for database/key/session files
//	NUTRIDIARY_DATABASE     database file path
//	NUTRIDIARY_SEED_ASSET   seed bundle path
//	NUTRIDIARY_SESSION_TTL  session lifetime, time.ParseDuration format
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("NUTRIDIARY_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("NUTRIDIARY_DATABASE"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("NUTRIDIARY_SEED_ASSET"); v != "" {
		cfg.SeedAssetPath = v
	}
	if v := os.Getenv("NUTRIDIARY_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionTTL = d
		}
	}
}
