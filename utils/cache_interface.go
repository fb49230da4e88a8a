package utils

import (
	"context"
	"sync"
	"time"

	"github.com/KincaidYang/whoisparser/logger"
)

// Cache stores serialized WHOIS results by key.
type Cache interface {
	Get(ctx context.Context, key string) (CacheResult, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	IsHealthy() bool
}

type cacheEntry struct {
	Value     string
	ExpiresAt time.Time
}

// MemoryCache is a size-bounded in-process Cache with periodic expiry.
type MemoryCache struct {
	data          sync.Map
	maxSize       int
	cleanInterval time.Duration
	mu            sync.Mutex
	size          int
	stop          chan struct{}
	stopOnce      sync.Once
}

// NewMemoryCache starts a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int, cleanInterval time.Duration) *MemoryCache {
	if cleanInterval <= 0 {
		cleanInterval = 5 * time.Minute
	}
	mc := &MemoryCache{
		maxSize:       maxSize,
		cleanInterval: cleanInterval,
		stop:          make(chan struct{}),
	}
	go mc.startCleaner()
	return mc
}

// Get returns the entry under key unless it expired.
func (mc *MemoryCache) Get(ctx context.Context, key string) (CacheResult, error) {
	value, ok := mc.data.Load(key)
	if !ok {
		return CacheResult{Found: false}, nil
	}

	entry := value.(cacheEntry)
	if time.Now().After(entry.ExpiresAt) {
		if _, loaded := mc.data.LoadAndDelete(key); loaded {
			mc.addSize(-1)
		}
		return CacheResult{Found: false}, nil
	}

	logger.Module("cache").Debugw("memory cache hit", "key", key)
	return CacheResult{Data: entry.Value, Found: true}, nil
}

// Set stores value. When the cache is full and nothing has expired the
// value is silently dropped.
func (mc *MemoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if _, exists := mc.data.Load(key); !exists && mc.currentSize() >= mc.maxSize {
		mc.cleanExpired()
		if mc.currentSize() >= mc.maxSize {
			return nil
		}
	}

	entry := cacheEntry{Value: value, ExpiresAt: time.Now().Add(expiration)}
	if _, existed := mc.data.Swap(key, entry); !existed {
		mc.addSize(1)
	}
	return nil
}

// IsHealthy always returns true for memory cache.
func (mc *MemoryCache) IsHealthy() bool {
	return true
}

// Len returns the number of stored entries, expired ones included.
func (mc *MemoryCache) Len() int {
	return mc.currentSize()
}

// Close stops the background cleaner.
func (mc *MemoryCache) Close() {
	mc.stopOnce.Do(func() { close(mc.stop) })
}

func (mc *MemoryCache) currentSize() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.size
}

func (mc *MemoryCache) addSize(delta int) {
	mc.mu.Lock()
	mc.size += delta
	if mc.size < 0 {
		mc.size = 0
	}
	mc.mu.Unlock()
}

func (mc *MemoryCache) startCleaner() {
	ticker := time.NewTicker(mc.cleanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.cleanExpired()
		case <-mc.stop:
			return
		}
	}
}

func (mc *MemoryCache) cleanExpired() {
	now := time.Now()
	mc.data.Range(func(key, value interface{}) bool {
		if now.After(value.(cacheEntry).ExpiresAt) {
			if _, loaded := mc.data.LoadAndDelete(key); loaded {
				mc.addSize(-1)
			}
		}
		return true
	})
}

// FallbackCache reads from primary while it is healthy and writes to both.
type FallbackCache struct {
	primary  Cache
	fallback Cache
}

// NewFallbackCache creates a new fallback cache
func NewFallbackCache(primary, fallback Cache) *FallbackCache {
	return &FallbackCache{
		primary:  primary,
		fallback: fallback,
	}
}

// Get tries primary cache first, then fallback
func (fc *FallbackCache) Get(ctx context.Context, key string) (CacheResult, error) {
	if fc.primary.IsHealthy() {
		result, err := fc.primary.Get(ctx, key)
		if err == nil {
			// writes go to both caches, so a primary miss is final
			return result, nil
		}
	}
	return fc.fallback.Get(ctx, key)
}

// Set writes to both caches and reports the primary error first.
func (fc *FallbackCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	var primaryErr error
	if fc.primary.IsHealthy() {
		primaryErr = fc.primary.Set(ctx, key, value, expiration)
	}

	fallbackErr := fc.fallback.Set(ctx, key, value, expiration)
	if primaryErr != nil {
		return primaryErr
	}
	return fallbackErr
}

// IsHealthy returns true if either cache is healthy
func (fc *FallbackCache) IsHealthy() bool {
	return fc.primary.IsHealthy() || fc.fallback.IsHealthy()
}

// IsPrimaryHealthy returns true if the primary cache (Redis) is healthy
func (fc *FallbackCache) IsPrimaryHealthy() bool {
	return fc.primary.IsHealthy()
}
