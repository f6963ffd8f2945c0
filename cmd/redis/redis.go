package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadheryan/property-listing/cmd/config"
	"github.com/redis/go-redis/v9"
)

// New opens a Redis client and verifies connectivity. It returns a nil client when
// REDIS_HOST is empty; the redis repository treats that as a disabled cache.
func New(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided")
	}
	if cfg.Redis.Host == "" {
		return nil, nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("unable to ping redis at %s: %w", addr, err)
	}

	return c, nil
}
