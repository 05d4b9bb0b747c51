package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	reset(t)
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("DB_DSN", "")

	require.NoError(t, InitConfig(""))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Empty(t, cfg.Database.DSN)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, "/uploads", cfg.Uploads.URLPrefix)
	assert.Equal(t, int64(10<<20), cfg.Uploads.MaxBytes)
	assert.False(t, cfg.Uploads.UniqueNames)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Local, cfg.Time.Location)
}

func TestLoad_FileAndEnv(t *testing.T) {
	reset(t)

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  port: 9000
time:
  location: UTC
uploads:
  dir: /tmp/imgs
  unique_names: true
`), 0o600))

	t.Setenv("PORT", "")
	t.Setenv("DB_DSN", "postgres://localhost/dining")
	t.Setenv("DINING_LOG_LEVEL", "debug")

	require.NoError(t, InitConfig(file))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/dining", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, time.UTC, cfg.Time.Location)
	assert.Equal(t, "/tmp/imgs", cfg.Uploads.Dir)
	assert.True(t, cfg.Uploads.UniqueNames)
}

func TestLoad_PlainPortEnv(t *testing.T) {
	reset(t)
	chdir(t, t.TempDir())
	t.Setenv("PORT", "7070")

	require.NoError(t, InitConfig(""))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_RejectsUnknownLocation(t *testing.T) {
	reset(t)
	chdir(t, t.TempDir())
	t.Setenv("DINING_TIME_LOCATION", "Mars/Olympus")

	require.NoError(t, InitConfig(""))
	_, err := Load()
	assert.Error(t, err)
}
