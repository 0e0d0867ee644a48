package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"foodgram-service/internal/infrastructure/logger"
)

// CatalogCache keeps catalog reads in a process-local LRU in front of the
// redis tier. Values are stored as JSON in both tiers.
type CatalogCache struct {
	local *lru.Cache
	redis *RedisService
	ttl   time.Duration
	log   *logger.Logger
}

type localEntry struct {
	raw       []byte
	expiresAt time.Time
}

func NewCatalogCache(size int, ttl time.Duration, redis *RedisService, baseLog *logger.Logger) (*CatalogCache, error) {
	local, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CatalogCache{
		local: local,
		redis: redis,
		ttl:   ttl,
		log:   baseLog.With("component", "CatalogCache"),
	}, nil
}

func (c *CatalogCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if v, ok := c.local.Get(key); ok {
		entry := v.(localEntry)
		if time.Now().Before(entry.expiresAt) {
			if err := json.Unmarshal(entry.raw, dest); err == nil {
				return true
			}
		}
		c.local.Remove(key)
	}

	found, err := c.redis.GetJSON(ctx, key, dest)
	if err != nil {
		c.log.Warn("redis read failed", "key", key, "error", err)
		return false
	}
	if found {
		c.storeLocal(key, dest)
	}
	return found
}

func (c *CatalogCache) Set(ctx context.Context, key string, value interface{}) {
	c.storeLocal(key, value)
	if err := c.redis.SetJSON(ctx, key, value, c.ttl); err != nil {
		c.log.Warn("redis write failed", "key", key, "error", err)
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		c.local.Remove(key)
	}
	if err := c.redis.DeleteKey(ctx, keys...); err != nil {
		c.log.Warn("redis invalidation failed", "keys", keys, "error", err)
	}
}

func (c *CatalogCache) storeLocal(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	c.local.Add(key, localEntry{raw: raw, expiresAt: time.Now().Add(c.ttl)})
}
