package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SONIFEROUS_SERVER_URL.
const EnvPrefix = "SONIFEROUS"

// Load reads config.toml from path, or from the search paths when path is
// empty, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath("$HOME/.config/soniferous/")
		v.AddConfigPath("$HOME/.config/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// keys without defaults are only seen by Unmarshal when bound
	for _, key := range []string{"server.url", "server.username", "server.password"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	// Set defaults from DefaultConfig
	defaults := DefaultConfig()
	v.SetDefault("player.backend", defaults.Player.Backend)
	v.SetDefault("player.http_timeout", defaults.Player.HTTPTimeout)
	v.SetDefault("search.mode", defaults.Search.Mode)
	v.SetDefault("search.debounce_ms", defaults.Search.DebounceMS)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.redis_addr", defaults.Cache.RedisAddr)
	v.SetDefault("cache.redis_password", defaults.Cache.RedisPassword)
	v.SetDefault("cache.redis_db", defaults.Cache.RedisDB)
	v.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_size", defaults.Log.MaxSize)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age", defaults.Log.MaxAge)
	v.SetDefault("log.compress", defaults.Log.Compress)
	v.SetDefault("ui.max_column_width", defaults.UI.MaxColumnWidth)

	// A missing file is fine when the environment carries the settings
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if !v.IsSet("server.url") {
		return nil, fmt.Errorf("%w: server.url", ErrMissingKey)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
