package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "scenario:"

// RedisScenarioCache caches resolved scenario code sets in Redis so that
// multiple instances share one cache. Failures degrade to cache misses.
type RedisScenarioCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisScenarioCache creates a Redis-backed scenario cache
func NewRedisScenarioCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisScenarioCache {
	return &RedisScenarioCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached codes for the key, if present
func (c *RedisScenarioCache) Get(ctx context.Context, key string) ([]string, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("scenario cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		c.logger.Debug("scenario cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return codes, true
}

// Set stores the codes under the key with the configured TTL
func (c *RedisScenarioCache) Set(ctx context.Context, key string, codes []string) {
	raw, err := json.Marshal(codes)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("scenario cache write failed", zap.Error(err))
	}
}
