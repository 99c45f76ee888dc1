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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
url = "http://music.local:8000"
username = "alice"
password = "secret"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://music.local:8000", cfg.Server.URL)
	assert.Equal(t, "alice", cfg.Server.Username)
	assert.Equal(t, "mpv", cfg.Player.Backend)
	assert.Equal(t, 30*time.Second, cfg.Player.GetHTTPTimeout())
	assert.Equal(t, "local", cfg.Search.Mode)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce())
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 40, cfg.UI.MaxColumnWidth)
}

func TestLoadReadsAllSections(t *testing.T) {
	path := writeConfig(t, `
[server]
url = "https://music.example.com/soniferous"

[player]
backend = "beep"
http_timeout = 5

[search]
mode = "remote"
debounce_ms = 150

[cache]
enabled = true
redis_addr = "localhost:6379"
redis_db = 2
ttl_seconds = 60

[log]
level = "debug"
file = "/tmp/soniferous.log"
compress = true

[ui]
max_column_width = 25
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "beep", cfg.Player.Backend)
	assert.Equal(t, 5*time.Second, cfg.Player.GetHTTPTimeout())
	assert.Equal(t, "remote", cfg.Search.Mode)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce())
	assert.Equal(t, CacheConfig{Enabled: true, RedisAddr: "localhost:6379", RedisDB: 2, TTLSeconds: 60}, cfg.Cache)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/soniferous.log", cfg.Log.File)
	assert.True(t, cfg.Log.Compress)
	assert.Equal(t, 25, cfg.UI.MaxColumnWidth)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
url = "http://music.local"

[player]
backend = "mpv"
`)
	t.Setenv("SONIFEROUS_SERVER_URL", "http://override.local")
	t.Setenv("SONIFEROUS_PLAYER_BACKEND", "beep")
	t.Setenv("SONIFEROUS_SEARCH_MODE", "remote")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://override.local", cfg.Server.URL)
	assert.Equal(t, "beep", cfg.Player.Backend)
	assert.Equal(t, "remote", cfg.Search.Mode)
}

func TestLoadMissingServerURL(t *testing.T) {
	path := writeConfig(t, `
[player]
backend = "mpv"
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadFromEnvironmentOnly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("SONIFEROUS_SERVER_URL", "http://music.local")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://music.local", cfg.Server.URL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"backend": `
[server]
url = "http://music.local"
[player]
backend = "vlc"`,
		"mode": `
[server]
url = "http://music.local"
[search]
mode = "fuzzy"`,
		"timeout": `
[server]
url = "http://music.local"
[player]
http_timeout = 0`,
		"debounce": `
[server]
url = "http://music.local"
[search]
debounce_ms = -5`,
		"url": `
[server]
url = "music.local"`,
		"ttl": `
[server]
url = "http://music.local"
[cache]
enabled = true
ttl_seconds = 0`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
