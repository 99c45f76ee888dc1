package cmd

import (
	"context"
	"io"

	"github.com/yhkl-dev/soniferous/config"
	"github.com/yhkl-dev/soniferous/library"
	"github.com/yhkl-dev/soniferous/logger"
	"github.com/yhkl-dev/soniferous/soniferous"
)

type environment struct {
	cfg     *config.Config
	catalog library.Catalog
	closers []func() error
}

func (e *environment) close() {
	for _, c := range e.closers {
		_ = c()
	}
	logger.Sync()
}

// setup loads the configuration, installs the logger and builds the
// catalog. console receives log records when non-nil.
func setup(ctx context.Context, opts *rootOptions, console io.Writer) (*environment, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	if err := logger.Init(logger.Config{
		Level:      logger.LogLevel(cfg.Log.Level),
		OutputPath: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
		Console:    console,
	}); err != nil {
		return nil, err
	}

	env := &environment{cfg: cfg}
	client := soniferous.Init(cfg.Server.URL, cfg.Server.Username, cfg.Server.Password, cfg.Player.GetHTTPTimeout())
	env.catalog = library.NewSoniferousLibrary(client)

	if cfg.Cache.Enabled {
		env.catalog = library.NewCachedCatalog(env.catalog, newCache(ctx, cfg, env), cfg.Cache.TTL())
	}
	return env, nil
}

// newCache prefers redis and falls back to memory when it is unreachable.
func newCache(ctx context.Context, cfg *config.Config, env *environment) library.Cache {
	if cfg.Cache.RedisAddr == "" {
		return library.NewMemoryCache()
	}
	rc, err := library.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	if err != nil {
		logger.Warn("redis cache unavailable, using memory cache",
			logger.String("addr", cfg.Cache.RedisAddr), logger.ErrorField(err))
		return library.NewMemoryCache()
	}
	env.closers = append(env.closers, rc.Close)
	logger.Debug("redis cache connected", logger.String("addr", cfg.Cache.RedisAddr))
	return rc
}
