package localization

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long a translation is kept.
const DefaultCacheTTL = 24 * time.Hour

// Cache stores translated text by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

func cacheKey(lang, mode, text string) string {
	sum := sha256.Sum256([]byte(mode + text))
	return fmt.Sprintf("translation:%s:%s", lang, hex.EncodeToString(sum[:]))
}

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisCache returns a Redis-backed cache. A non-positive ttl uses
// DefaultCacheTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{redis: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("localization: reading %s: %w", key, err)
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	if err := c.redis.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("localization: writing %s: %w", key, err)
	}
	return nil
}
