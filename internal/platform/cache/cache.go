// Package cache is a thin byte cache backed by redis. A nil *Cache is valid
// and behaves as a permanent miss, so callers never need to branch on whether
// caching is configured.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{client: client, ttl: ttl}, nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
