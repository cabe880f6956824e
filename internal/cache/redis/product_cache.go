package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/port"
)

const keyPrefix = "backoffice:product:ean:"

type productCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewClient connects to Redis. It returns nil when no address is configured.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// NewProductCache wraps client as a ProductCache. A nil client yields a cache that
// always misses.
func NewProductCache(client *goredis.Client, ttl time.Duration) port.ProductCache {
	return &productCache{client: client, ttl: ttl}
}

func cacheKey(ean string) string {
	return keyPrefix + strings.TrimSpace(ean)
}

func (c *productCache) Get(ctx context.Context, ean string) (*domain.Product, error) {
	if c.client == nil || ean == "" {
		return nil, nil
	}
	data, err := c.client.Get(ctx, cacheKey(ean)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var p domain.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *productCache) Set(ctx context.Context, product *domain.Product) error {
	if c.client == nil || product == nil || product.EAN == "" {
		return nil
	}
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(product.EAN), data, c.ttl).Err()
}

func (c *productCache) Invalidate(ctx context.Context, ean string) error {
	if c.client == nil || ean == "" {
		return nil
	}
	return c.client.Del(ctx, cacheKey(ean)).Err()
}
