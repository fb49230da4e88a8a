package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/KincaidYang/whoisparser/metrics"
)

// RecordKeyPrefix prefixes the cache keys of assembled WHOIS results.
const RecordKeyPrefix = "whois:"

// CacheResult represents the result of a cache operation
type CacheResult struct {
	Data  string
	Found bool
}

// RecordCacheKey returns the cache key of a domain's result.
func RecordCacheKey(domain string) string {
	return RecordKeyPrefix + domain
}

// GetFromCache reads key from cache and counts the outcome.
func GetFromCache(ctx context.Context, cache Cache, key string) (CacheResult, error) {
	result, err := cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheRequests.WithLabelValues("error").Inc()
	case result.Found:
		metrics.CacheRequests.WithLabelValues("hit").Inc()
	default:
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	}
	return result, err
}

// SetToCache stores data under key. Non-string values are JSON encoded.
func SetToCache(ctx context.Context, cache Cache, key string, data interface{}, expiration time.Duration) error {
	var value string
	switch v := data.(type) {
	case string:
		value = v
	case []byte:
		value = string(v)
	default:
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal data for caching: %w", err)
		}
		value = string(encoded)
	}
	return cache.Set(ctx, key, value, expiration)
}

// HandleCacheResponse writes cached data to HTTP response
func HandleCacheResponse(w http.ResponseWriter, data string, contentType string) {
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	fmt.Fprint(w, data)
}
