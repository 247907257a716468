package availability

import (
	"context"
	"encoding/json"
	"time"

	"dineslot/models"
	"dineslot/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache stores rendered availability responses for a short time.
// Implementations must treat every failure as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*models.AvailabilityResponse, bool)
	Set(ctx context.Context, key string, resp *models.AvailabilityResponse, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

func cacheKey(spaceID, date string) string {
	return utils.AvailabilityCachePrefix + spaceID + ":" + date
}

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	Client *redis.Client
	Logger *zap.Logger
}

// NewCache wraps client in a RedisCache, or returns a nil Cache when there is no client.
func NewCache(client *redis.Client, logger *zap.Logger) Cache {
	if client == nil {
		return nil
	}
	return NewRedisCache(client, logger)
}

func NewRedisCache(client *redis.Client, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{Client: client, Logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.AvailabilityResponse, bool) {
	data, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn("availability cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var resp models.AvailabilityResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.Logger.Warn("availability cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &resp, true
}

func (c *RedisCache) Set(ctx context.Context, key string, resp *models.AvailabilityResponse, ttl time.Duration) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.Logger.Warn("failed to marshal availability", zap.Error(err))
		return
	}
	if err := c.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.Logger.Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.Client.Del(ctx, key).Err(); err != nil {
		c.Logger.Warn("availability cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
