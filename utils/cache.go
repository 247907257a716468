// File: utils/cache.go
package utils

import (
	"context"
	"sync"
	"time"

	"dineslot/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// CacheClient backs the availability read cache. It stays nil when Redis
	// could not be reached at startup.
	CacheClient *redis.Client
	cacheOnce   sync.Once
)

// InitCache initializes the Redis cache client (using DB from AppConfig for general caching).
// An unreachable server is logged and leaves CacheClient nil.
func InitCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("Failed to connect to Redis (Cache), availability will be served uncached",
			zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
		_ = client.Close()
		CacheClient = nil
		return
	}
	CacheClient = client
}

// GetCacheClient returns the cache client, connecting on first use.
// The result is nil when Redis is unavailable.
func GetCacheClient() *redis.Client {
	cacheOnce.Do(func() {
		if CacheClient == nil {
			InitCache()
		}
	})
	return CacheClient
}
