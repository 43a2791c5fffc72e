package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lysyi3m/grocery-comb/app/recipe"
)

// RedisCache stores resolved recipes in Redis. Used instead of the sqlite
// repository when several instances share one cache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection. A zero TTL
// keeps entries until evicted; staleness is then handled by the refresh task.
func NewRedisCache(addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*recipe.Recipe, error) {
	data, err := c.client.Get(ctx, recipeKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", key, err)
	}

	var r recipe.Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		// Invalid payload: treat as a miss and drop it.
		c.client.Del(ctx, recipeKey(key))
		return nil, nil
	}

	return &r, nil
}

func (c *RedisCache) Put(ctx context.Context, key string, r *recipe.Recipe) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe %s: %w", key, err)
	}

	if err := c.client.Set(ctx, recipeKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recipe %s: %w", key, err)
	}

	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func recipeKey(key string) string {
	return "recipe:" + key
}
