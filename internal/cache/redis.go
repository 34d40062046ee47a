package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flightapp/flightbooking/config"
	"github.com/flightapp/flightbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds recent search results so repeated route lookups skip the
// store. Entries expire by TTL; there is no invalidation on inventory add.
type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

func (c *RedisCache) GetSearch(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Inventory, error) {
	data, err := c.client.Get(ctx, searchKey(origin, destination, from, to)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var result []domain.Inventory
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, origin, destination string, from, to time.Time, result []domain.Inventory) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(origin, destination, from, to), payload, c.searchTTL).Err()
}

func searchKey(origin, destination string, from, to time.Time) string {
	return fmt.Sprintf("cache:search:%s:%s:%d:%d", origin, destination, from.Unix(), to.Unix())
}
