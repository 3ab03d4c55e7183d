package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores encoded advisor results by key.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache keeps results in Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects lazily; call Ping to verify the address.
func NewRedisCache(addr, password string, db int) *RedisCache {
	return &RedisCache{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachingAdvisor memoizes another advisor's successful results. Cache
// errors are logged and never fail a request; failures are not cached.
type CachingAdvisor struct {
	next  Advisor
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachingAdvisor(next Advisor, cache Cache, ttl time.Duration, log *slog.Logger) *CachingAdvisor {
	return &CachingAdvisor{next: next, cache: cache, ttl: ttl, log: log}
}

func (a *CachingAdvisor) Advise(ctx context.Context, m Metrics) (*Result, error) {
	key := cacheKey(m)

	b, ok, err := a.cache.Get(ctx, key)
	switch {
	case err != nil:
		a.log.Warn("advisor cache read failed", "key", key, "error", err)
	case ok:
		res, err := DecodeResult(b)
		if err == nil {
			return res, nil
		}
		a.log.Warn("discarding cached advisor result", "key", key, "error", err)
	}

	res, err := a.next.Advise(ctx, m)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(res)
	if err != nil {
		a.log.Warn("encoding advisor result for cache", "error", err)
		return res, nil
	}
	if err := a.cache.Set(ctx, key, encoded, a.ttl); err != nil {
		a.log.Warn("advisor cache write failed", "key", key, "error", err)
	}
	return res, nil
}

func cacheKey(m Metrics) string {
	return fmt.Sprintf("fitrec:advice:%s:%s:%s", formatNumber(m.Age), formatNumber(m.Height), formatNumber(m.Weight))
}
