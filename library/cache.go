package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yhkl-dev/soniferous/domain"
	"github.com/yhkl-dev/soniferous/logger"
)

const keyPrefix = "soniferous:"

// Cache stores encoded catalog listings. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is a Cache backed by a redis server.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redis and checks the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// CachedCatalog serves listings from a cache and falls back to the inner
// catalog on a miss. Cache failures are logged and never returned.
type CachedCatalog struct {
	Catalog
	cache Cache
	ttl   time.Duration
}

func NewCachedCatalog(inner Catalog, cache Cache, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{Catalog: inner, cache: cache, ttl: ttl}
}

func (c *CachedCatalog) Songs(ctx context.Context) ([]domain.Song, error) {
	return cached(ctx, c, "songs", c.Catalog.Songs)
}

func (c *CachedCatalog) Albums(ctx context.Context) ([]domain.Album, error) {
	return cached(ctx, c, "albums", c.Catalog.Albums)
}

func (c *CachedCatalog) Artists(ctx context.Context) ([]domain.Artist, error) {
	return cached(ctx, c, "artists", c.Catalog.Artists)
}

func (c *CachedCatalog) SongsByArtist(ctx context.Context, id domain.ArtistID) ([]domain.Song, error) {
	return cached(ctx, c, "artist:"+string(id)+":songs", func(ctx context.Context) ([]domain.Song, error) {
		return c.Catalog.SongsByArtist(ctx, id)
	})
}

func (c *CachedCatalog) SongsByAlbum(ctx context.Context, id domain.AlbumID) ([]domain.Song, error) {
	return cached(ctx, c, "album:"+string(id)+":songs", func(ctx context.Context) ([]domain.Song, error) {
		return c.Catalog.SongsByAlbum(ctx, id)
	})
}

func (c *CachedCatalog) AlbumsByArtist(ctx context.Context, id domain.ArtistID) ([]domain.Album, error) {
	return cached(ctx, c, "artist:"+string(id)+":albums", func(ctx context.Context) ([]domain.Album, error) {
		return c.Catalog.AlbumsByArtist(ctx, id)
	})
}

func cached[T any](ctx context.Context, c *CachedCatalog, resource string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	key := keyPrefix + resource

	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", logger.String("key", key), logger.ErrorField(err))
	}
	if ok {
		var out []T
		if err := json.Unmarshal(data, &out); err == nil {
			logger.Debug("cache hit", logger.String("key", key))
			return out, nil
		}
		logger.Warn("cache entry corrupt", logger.String("key", key))
	}

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(out); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			logger.Warn("cache write failed", logger.String("key", key), logger.ErrorField(err))
		}
	}
	return out, nil
}
