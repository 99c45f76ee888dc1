package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// ErrMissingKey is returned when a required setting is absent.
var ErrMissingKey = errors.New("missing required config")

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Player PlayerConfig `mapstructure:"player"`
	Search SearchConfig `mapstructure:"search"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Log    LogConfig    `mapstructure:"log"`
	UI     UIConfig     `mapstructure:"ui"`
}

// ServerConfig contains music server connection settings
type ServerConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// PlayerConfig contains playback and HTTP client settings
type PlayerConfig struct {
	Backend     string `mapstructure:"backend"`      // mpv or beep
	HTTPTimeout int    `mapstructure:"http_timeout"` // in seconds
}

// SearchConfig selects where text search runs
type SearchConfig struct {
	Mode       string `mapstructure:"mode"` // local or remote
	DebounceMS int    `mapstructure:"debounce_ms"`
}

// CacheConfig contains the catalog cache settings
type CacheConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	RedisAddr     string `mapstructure:"redis_addr"` // empty uses an in-memory cache
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	TTLSeconds    int    `mapstructure:"ttl_seconds"`
}

// LogConfig contains log level and file rotation settings
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// UIConfig contains user interface settings
type UIConfig struct {
	MaxColumnWidth int `mapstructure:"max_column_width"`
}

// GetHTTPTimeout returns the HTTP timeout as a time.Duration
func (p *PlayerConfig) GetHTTPTimeout() time.Duration {
	return time.Duration(p.HTTPTimeout) * time.Second
}

// Debounce returns the search quiescence window.
func (s *SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// TTL returns how long cached listings stay valid.
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Validate checks values that parsed but make no sense
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("invalid server.url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server.url %q: want http(s)://host[:port][/path]", c.Server.URL)
	}

	switch c.Player.Backend {
	case "mpv", "beep":
	default:
		return fmt.Errorf("invalid player.backend %q: want mpv or beep", c.Player.Backend)
	}
	switch c.Search.Mode {
	case "local", "remote":
	default:
		return fmt.Errorf("invalid search.mode %q: want local or remote", c.Search.Mode)
	}

	if c.Player.HTTPTimeout <= 0 {
		return fmt.Errorf("player.http_timeout must be positive, got %d", c.Player.HTTPTimeout)
	}
	if c.Search.DebounceMS <= 0 {
		return fmt.Errorf("search.debounce_ms must be positive, got %d", c.Search.DebounceMS)
	}
	if c.Cache.Enabled && c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive, got %d", c.Cache.TTLSeconds)
	}
	return nil
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			Backend:     "mpv",
			HTTPTimeout: 30,
		},
		Search: SearchConfig{
			Mode:       "local",
			DebounceMS: 300,
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
		},
		Log: LogConfig{
			Level:      "info",
			File:       defaultLogFile(),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		UI: UIConfig{
			MaxColumnWidth: 40,
		},
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "soniferous", "soniferous.log")
}
