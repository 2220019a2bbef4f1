package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a Redis read-through cache for product lookups. The product
// master is read-only from this service's perspective, so entries expire
// by TTL alone and are never invalidated explicitly.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) keyByCode(code string) string {
	return "product:code:" + code
}

func (c *Cache) keyByID(id int64) string {
	return "product:id:" + strconv.FormatInt(id, 10)
}

// Fetch loads a cached product or populates the entry using the loader.
// Redis failures degrade to a direct load rather than failing the lookup.
func (c *Cache) Fetch(ctx context.Context, key string, loader func(context.Context) (*Product, error)) (*Product, error) {
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var p Product
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return loader(ctx)
	}

	p, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(p); err == nil {
		_ = c.client.Set(ctx, key, data, c.ttl).Err()
	}
	return p, nil
}
