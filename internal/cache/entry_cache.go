package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "entryledger/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyEntry = "entry:"

// EntryCache caches per-identity entry lookups in Redis. Only the
// primary record is cached; priority and temporal rows are written far
// more rarely than entries are read.
type EntryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewEntryCache returns a new EntryCache.
func NewEntryCache(rdb *redis.Client, ttl time.Duration) *EntryCache {
	return &EntryCache{rdb: rdb, ttl: ttl}
}

// GetEntry returns the cached entry, or nil on miss.
func (c *EntryCache) GetEntry(ctx context.Context, id dom.Identity) (*dom.Entry, error) {
	b, err := c.rdb.Get(ctx, keyEntry+string(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e dom.Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// SetEntry stores the entry in cache.
func (c *EntryCache) SetEntry(ctx context.Context, e dom.Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyEntry+string(e.Identity), b, c.ttl).Err()
}

// Invalidate drops the cached entry for id (cache invalidation on write).
func (c *EntryCache) Invalidate(ctx context.Context, id dom.Identity) error {
	return c.rdb.Del(ctx, keyEntry+string(id)).Err()
}
