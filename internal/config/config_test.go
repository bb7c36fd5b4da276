package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, filepath.Join("data", "diary.db"), c.DatabasePath)
	assert.Equal(t, filepath.Join("assets", "db", "nutriscore.db"), c.SeedAssetPath)
	assert.Equal(t, 720*time.Hour, c.SessionTTL)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
}
