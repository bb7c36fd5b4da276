package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-d", "/tmp/nd", "-db", "/tmp/nd/x.db", "-s", "/tmp/seed.db", "-t", "24"},
			expected: &Config{
				DataDir:       "/tmp/nd",
				DatabasePath:  "/tmp/nd/x.db",
				SeedAssetPath: "/tmp/seed.db",
				SessionTTL:    24 * time.Hour,
			},
		},
		{
			name:        "incorrect session ttl",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
			expected:    &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("NUTRIDIARY_DATA_DIR", "/srv/nd")
	t.Setenv("NUTRIDIARY_DATABASE", "/srv/nd/diary.db")
	t.Setenv("NUTRIDIARY_SEED_ASSET", "/srv/seed.db")
	t.Setenv("NUTRIDIARY_SESSION_TTL", "12h")

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "/srv/nd", cfg.DataDir)
	assert.Equal(t, "/srv/nd/diary.db", cfg.DatabasePath)
	assert.Equal(t, "/srv/seed.db", cfg.SeedAssetPath)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
}

func TestParseEnv_InvalidTTLIgnored(t *testing.T) {
	t.Setenv("NUTRIDIARY_SESSION_TTL", "whenever")

	cfg := &Config{SessionTTL: 7 * time.Hour}
	parseEnv(cfg)

	assert.Equal(t, 7*time.Hour, cfg.SessionTTL)
}
