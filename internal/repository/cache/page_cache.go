// Package cache stores serialized list pages keyed by content kind so a
// repeated admin or discovery fetch skips the database.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"

	DefaultTTL = 5 * time.Minute
	keyPrefix  = "portfolio:pages:"
	genPrefix  = "portfolio:gen:"
)

// PageCache is a byte-level store with prefix invalidation. Every
// InvalidatePrefix bumps the generation of that prefix, so a reader can
// tell whether an eviction ran while it was loading a page.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	Generation(ctx context.Context, prefix string) (int64, error)
}

// MemoryPageCache keeps pages in process.
type MemoryPageCache struct {
	store *gocache.Cache
	ttl   time.Duration

	mu   sync.Mutex
	gens map[string]int64
}

func NewMemoryPageCache(ttl time.Duration) *MemoryPageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryPageCache{
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
		gens:  make(map[string]int64),
	}
}

func (c *MemoryPageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (c *MemoryPageCache) Set(_ context.Context, key string, value []byte) error {
	c.store.Set(key, value, c.ttl)
	return nil
}

func (c *MemoryPageCache) InvalidatePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	c.gens[prefix]++
	c.mu.Unlock()
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			c.store.Delete(k)
		}
	}
	return nil
}

func (c *MemoryPageCache) Generation(_ context.Context, prefix string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[prefix], nil
}

func (c *MemoryPageCache) Len() int {
	return c.store.ItemCount()
}

// RedisPageCache shares pages across instances.
type RedisPageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPageCache(rdb *redis.Client, ttl time.Duration) *RedisPageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisPageCache{rdb: rdb, ttl: ttl}
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisPageCache) Set(ctx context.Context, key string, value []byte) error {
	return c.rdb.Set(ctx, keyPrefix+key, value, c.ttl).Err()
}

func (c *RedisPageCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if err := c.rdb.Incr(ctx, genPrefix+prefix).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, keyPrefix+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *RedisPageCache) Generation(ctx context.Context, prefix string) (int64, error) {
	n, err := c.rdb.Get(ctx, genPrefix+prefix).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// NewRedisClient parses url, falling back to treating it as a bare address.
func NewRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}

// New picks a PageCache for driver. Redis is used only when it answers a ping.
func New(ctx context.Context, driver, redisURL string, ttl time.Duration) (PageCache, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryPageCache(ttl), nil
	case DriverRedis:
		rdb := NewRedisClient(redisURL)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisPageCache(rdb, ttl), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", driver)
	}
}
