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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, "date_time", cfg.Align.TimeField)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.Align.Layout)
	assert.Equal(t, 100000, cfg.Align.MaxPoints)
	assert.Equal(t, 1000, cfg.Align.DownsampleThreshold)
	assert.Equal(t, 5*time.Minute, cfg.Align.DefaultRangeInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: 127.0.0.1
  http_port: 9090
auth:
  enabled: true
  api_keys:
    - test-api-key-that-is-long-enough-0001
align:
  time_field: ts
  timezone: UTC
  max_points: 500
logging:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.True(t, cfg.Auth.Enabled)
	assert.Len(t, cfg.Auth.APIKeys, 1)
	assert.Equal(t, "ts", cfg.Align.TimeField)
	assert.Equal(t, 500, cfg.Align.MaxPoints)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "0.0.0.0", HTTPPort: 8080},
			Align:  AlignConfig{TimeField: "date_time", MaxPoints: 1000},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Server.HTTPPort = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty time field", func(t *testing.T) {
		cfg := base()
		cfg.Align.TimeField = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero max points", func(t *testing.T) {
		cfg := base()
		cfg.Align.MaxPoints = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := base()
		cfg.Align.Timezone = "Mars/Olympus"
		assert.Error(t, cfg.Validate())
	})
}

func TestLocation(t *testing.T) {
	c := AlignConfig{Timezone: "UTC"}
	assert.Equal(t, time.UTC, c.Location())

	c = AlignConfig{}
	assert.Equal(t, time.Local, c.Location())
}
