package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000/api", c.APIBaseURL)
	assert.Equal(t, "goowi.db", c.DataFile)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, MediaConfig{Region: "us-east-1"}, c.Media)
	assert.Empty(t, c.Media.Bucket, "uploads must be off unless a bucket is configured")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"goowi"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("GOOWI_API_URL", "http://from-env/api")
	t.Setenv("GOOWI_LOG_LEVEL", "warn")
	os.Args = []string{"goowi", "-a", "http://from-flag/api"}

	cfg := LoadConfig()
	assert.Equal(t, "http://from-flag/api", cfg.APIBaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}
