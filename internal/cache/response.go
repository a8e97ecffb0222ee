// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for public API responses.
// Catalog and review JSON payloads are stored under criteria-derived keys
// so repeated storefront queries skip filtering and serialization. Admin
// mutations clear the whole cache; entries also expire on a short TTL.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"mgepcar/internal/catalog"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached API responses.
	responseKeyPrefix = "api:"

	// DefaultResponseTTL is how long a cached response stays valid.
	DefaultResponseTTL = 2 * time.Minute
)

// ResponseCache manages public API response caching in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey
// client. A zero ttl falls back to DefaultResponseTTL.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns false on miss. Cache
// errors degrade to a miss so Valkey outages never break the public site.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a response body under the given key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if err := rc.client.Set(ctx, responseKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached response by scanning for the prefix.
// Called after any admin mutation, since listings and reviews feed
// multiple cached payloads.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "deleted", deleted)
	}
}

// ListingsKey derives the cache key for a catalog listing query. Criteria
// that filter identically produce identical keys.
func ListingsKey(c catalog.Criteria, page int) string {
	return fmt.Sprintf("listings:q=%s:min_year=%d:max_price=%d:show_sold=%t:page=%d",
		c.Search, c.MinYear, c.MaxPrice, c.ShowSold, page)
}

// ListingKey derives the cache key for a listing detail response.
func ListingKey(slug string, image int) string {
	return fmt.Sprintf("listing:%s:image=%d", slug, image)
}

// ReviewsKey derives the cache key for the testimonial rail response.
func ReviewsKey(slide int) string {
	return fmt.Sprintf("reviews:slide=%d", slide)
}
