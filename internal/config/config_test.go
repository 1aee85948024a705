package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "us", cfg.Country)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, 128, cfg.CacheSize)
	assert.Equal(t, 4, cfg.Workers)
	assert.Zero(t, cfg.Throttle)
	assert.Empty(t, cfg.DB)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
lang: de
throttle: 2.5
timeout: 5s
retries: -1
db: /tmp/playmap.db
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Lang)
	assert.Equal(t, "us", cfg.Country, "unset keys take defaults")
	assert.Equal(t, 2.5, cfg.Throttle)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, -1, cfg.Retries)
	assert.Equal(t, "/tmp/playmap.db", cfg.DB)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile(writeConfig(t, "lang: [unterminated"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "lang: de\nworkers: 2\n")
	t.Setenv("PLAYMAP_LANG", "fr")
	t.Setenv("PLAYMAP_WORKERS", "8")
	t.Setenv("PLAYMAP_TIMEOUT", "1m")
	t.Setenv("PLAYMAP_THROTTLE", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Lang)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, 3.0, cfg.Throttle)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("PLAYMAP_RETRIES", "many")
	_, err := Load("")
	assert.ErrorContains(t, err, "PLAYMAP_RETRIES")
}
