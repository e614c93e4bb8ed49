package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"workvista/internal/marketplace/domain/model"
	"workvista/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// feedKey is a single hash holding one field per category tag, so a mutation
// invalidates every cached feed with one DEL.
const feedKey = "categories:feed"

// allCategoriesField is the hash field for the unfiltered feed.
const allCategoriesField = "__all__"

// RedisListingCache caches the public listing feed in Redis. Every failure
// path degrades to a cache miss: the feed is always recoverable from the store.
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewRedisListingCache creates a new Redis-backed listing feed cache
func NewRedisListingCache(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisListingCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisListingCache{
		client: client,
		ttl:    ttl,
		log:    log.WithComponent("listing_cache"),
	}
}

// GetFeed returns the cached feed for the category tag and whether it was present
func (c *RedisListingCache) GetFeed(ctx context.Context, category string) ([]model.Listing, bool) {
	payload, err := c.client.HGet(ctx, feedKey, fieldFor(category)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("feed cache read failed: %v", err)
		}
		return nil, false
	}

	var listings []model.Listing
	if err := json.Unmarshal(payload, &listings); err != nil {
		c.log.Warnf("feed cache entry corrupt, dropping: %v", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return listings, true
}

// SetFeed stores the feed for the category tag
func (c *RedisListingCache) SetFeed(ctx context.Context, category string, listings []model.Listing) {
	payload, err := json.Marshal(listings)
	if err != nil {
		c.log.Warnf("feed cache marshal failed: %v", err)
		return
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, feedKey, fieldFor(category), payload)
	pipe.Expire(ctx, feedKey, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warnf("feed cache write failed: %v", err)
	}
}

// Invalidate drops every cached feed
func (c *RedisListingCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, feedKey).Err(); err != nil {
		c.log.Warnf("feed cache invalidation failed: %v", err)
	}
}

func fieldFor(category string) string {
	if category == "" {
		return allCategoriesField
	}
	return category
}
