package utils

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KincaidYang/whoisparser/logger"
	"github.com/redis/go-redis/v9"
)

// RedisCache is the shared Cache backed by Redis. It tracks connection
// health and turns itself off while Redis is unreachable.
type RedisCache struct {
	client  *redis.Client
	healthy bool
	mu      sync.RWMutex
}

// NewRedisCache pings Redis once and keeps checking every 30 seconds.
func NewRedisCache(client *redis.Client) *RedisCache {
	rc := &RedisCache{client: client}
	rc.checkHealth(true)
	go rc.startHealthChecker()
	return rc
}

// Get retrieves a value from Redis cache
func (rc *RedisCache) Get(ctx context.Context, key string) (CacheResult, error) {
	if !rc.IsHealthy() {
		return CacheResult{Found: false}, nil
	}

	value, err := rc.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		logger.Module("cache").Debugw("redis cache hit", "key", key)
		return CacheResult{Data: value, Found: true}, nil
	case errors.Is(err, redis.Nil):
		return CacheResult{Found: false}, nil
	default:
		rc.setHealthy(false)
		return CacheResult{Found: false}, err
	}
}

// Set stores a value; it is a no-op while Redis is unhealthy.
func (rc *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if !rc.IsHealthy() {
		return nil
	}

	if err := rc.client.Set(ctx, key, value, expiration).Err(); err != nil {
		rc.setHealthy(false)
		return err
	}
	return nil
}

// IsHealthy returns the health status of Redis connection
func (rc *RedisCache) IsHealthy() bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.healthy
}

func (rc *RedisCache) setHealthy(healthy bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.healthy = healthy
}

// checkHealth logs only on the first check and on state changes.
func (rc *RedisCache) checkHealth(isInitial bool) {
	log := logger.Module("cache")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	wasHealthy := rc.IsHealthy()
	if err := rc.client.Ping(ctx).Err(); err != nil {
		rc.setHealthy(false)
		if isInitial {
			log.Warnw("redis unavailable", "error", err)
		} else if wasHealthy {
			log.Warnw("redis connection lost", "error", err)
		}
		return
	}

	rc.setHealthy(true)
	if !isInitial && !wasHealthy {
		log.Info("redis connection restored")
	}
}

func (rc *RedisCache) startHealthChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		rc.checkHealth(false)
	}
}
