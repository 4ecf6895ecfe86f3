package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache is a tenant-scoped TTL cache for rendered report payloads.
// A nil *ReportCache is a valid no-op cache, so callers never branch on
// whether caching is configured.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache connects to redis at the given URL. An empty URL disables
// caching and returns nil.
func NewReportCache(redisURL string, ttl time.Duration) (*ReportCache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &ReportCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

// Key builds a cache key scoped to one tenant and report.
func Key(tenantID, report string, parts ...string) string {
	key := "report:" + tenantID + ":" + report
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Get returns the cached payload and whether it was present.
func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache failures and misses look the same to the caller
		return nil, false
	}
	return val, true
}

// Set stores the payload under the configured TTL. Errors are swallowed; the
// cache is best effort.
func (c *ReportCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}

// InvalidateTenant drops all cached reports for a tenant. Called after writes
// that change report outputs (postings, closes, reversals).
func (c *ReportCache) InvalidateTenant(ctx context.Context, tenantID string) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, "report:"+tenantID+":*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

// Close releases the underlying connection.
func (c *ReportCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
