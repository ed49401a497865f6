package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "recipe_cost:"

// RedisRecipeCostCache guarda el CMV unitario por producto en Redis.
type RedisRecipeCostCache struct {
	client *redis.Client
}

func NewRedisRecipeCostCache(addr string, password string, db int) *RedisRecipeCostCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisRecipeCostCache{client: client}
}

func (c *RedisRecipeCostCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisRecipeCostCache) Close() error {
	return c.client.Close()
}

func (c *RedisRecipeCostCache) Get(ctx context.Context, productID string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+productID).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	cost, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, err
	}
	return cost, true, nil
}

func (c *RedisRecipeCostCache) Set(ctx context.Context, productID string, cost decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, keyPrefix+productID, cost.String(), ttl).Err()
}

func (c *RedisRecipeCostCache) Delete(ctx context.Context, productIDs ...string) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = keyPrefix + id
	}
	return c.client.Del(ctx, keys...).Err()
}
