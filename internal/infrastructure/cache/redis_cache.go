package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisStockCache implementación de StockCache sobre Redis.
type RedisStockCache struct {
	client *redis.Client
}

// NewRedisStockCache construye el cliente Redis.
func NewRedisStockCache(addr, password string, db int) *RedisStockCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStockCache{client: client}
}

// Ping verifica la conexión.
func (c *RedisStockCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisStockCache) Close() error {
	return c.client.Close()
}

func stockKey(itemID string) string {
	return "stock:lkg:" + itemID
}

// Get devuelve el último valor conocido; found=false si no hay entrada.
func (c *RedisStockCache) Get(ctx context.Context, itemID string) (*CachedStock, bool, error) {
	val, err := c.client.Get(ctx, stockKey(itemID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cached CachedStock
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, false, err
	}
	return &cached, true, nil
}

// Set guarda el último valor conocido con TTL.
func (c *RedisStockCache) Set(ctx context.Context, itemID string, value *CachedStock, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, stockKey(itemID), payload, ttl).Err()
}
