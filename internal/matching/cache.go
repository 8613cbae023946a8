// internal/matching/cache.go
// Short-lived Redis cache for computed recommendation pages. Cache
// failures are logged and swallowed; a cold cache just recomputes.

package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const resultCacheTTL = 60 * time.Second

// ResultCache caches serialized recommendation pages per
// (requester, page, pageSize).
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache wraps a Redis client. Returns nil for a nil client so
// callers can wire the cache unconditionally.
func NewResultCache(client *redis.Client) *ResultCache {
	if client == nil {
		return nil
	}
	return &ResultCache{client: client, ttl: resultCacheTTL}
}

func cacheKey(requesterID int64, page, pageSize int) string {
	return fmt.Sprintf("match:rec:%d:%d:%d", requesterID, page, pageSize)
}

func (c *ResultCache) Get(ctx context.Context, requesterID int64, page, pageSize int) ([]*RecommendationRecord, bool) {
	payload, err := c.client.Get(ctx, cacheKey(requesterID, page, pageSize)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("matching: cache read failed: %v", err)
		}
		return nil, false
	}

	var records []*RecommendationRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		log.Printf("matching: discarding corrupt cache entry: %v", err)
		return nil, false
	}
	return records, true
}

func (c *ResultCache) Set(ctx context.Context, requesterID int64, page, pageSize int, records []*RecommendationRecord) {
	payload, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(requesterID, page, pageSize), payload, c.ttl).Err(); err != nil {
		log.Printf("matching: cache write failed: %v", err)
	}
}

// Invalidate drops every cached page for a user, called when their
// profile or questionnaire answers change.
func (c *ResultCache) Invalidate(ctx context.Context, requesterID int64) {
	pattern := fmt.Sprintf("match:rec:%d:*", requesterID)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("matching: cache invalidation failed: %v", err)
	}
}
