package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"workshopcart/models"
	"workshopcart/utils"

	"github.com/go-redis/redis/v8"
)

// MemoryCache keeps one inventory snapshot in process.
type MemoryCache struct {
	mu      sync.RWMutex
	items   []models.CatalogItem
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (c *MemoryCache) Load(ctx context.Context) ([]models.CatalogItem, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.items == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out, true, nil
}

func (c *MemoryCache) Store(ctx context.Context, items []models.CatalogItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]models.CatalogItem, len(items))
	copy(c.items, items)
	c.expires = c.now().Add(c.ttl)
	return nil
}

// RedisCache keeps the inventory snapshot under utils.CatalogCacheKey.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Load(ctx context.Context) ([]models.CatalogItem, bool, error) {
	data, err := c.client.Get(ctx, utils.CatalogCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *RedisCache) Store(ctx context.Context, items []models.CatalogItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, utils.CatalogCacheKey, b, c.ttl).Err()
}
