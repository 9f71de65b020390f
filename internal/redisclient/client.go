package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamblessed-asd/order-api/internal/models"

	"github.com/go-redis/redis/v8"
)

const popularItemsKey = "report:popular_items"

// Client caches the popular-items report. The cache is an optimization:
// every read path falls back to the database when it misses or fails.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetPopularItems returns the cached report. The second return value is
// false on a cache miss.
func (c *Client) GetPopularItems(ctx context.Context) ([]models.PopularItem, bool, error) {
	data, err := c.rdb.Get(ctx, popularItemsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read popular items cache: %w", err)
	}

	var items []models.PopularItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode popular items cache: %w", err)
	}
	return items, true, nil
}

// SetPopularItems stores the report with a TTL
func (c *Client) SetPopularItems(ctx context.Context, items []models.PopularItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode popular items: %w", err)
	}
	return c.rdb.Set(ctx, popularItemsKey, data, ttl).Err()
}

// InvalidatePopularItems drops the cached report after a mutation
func (c *Client) InvalidatePopularItems(ctx context.Context) error {
	return c.rdb.Del(ctx, popularItemsKey).Err()
}
