package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Repository defines methods for interacting with Redis key-values.
// A repository built with a nil client is a no-op: reads miss and writes succeed.
type Repository interface {
	GetInt(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type redis struct {
	client *goredis.Client
}

func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

// GetInt retrieves an integer counter, 0 when the key is absent
func (r *redis) GetInt(ctx context.Context, key string) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	val, err := r.client.Get(ctx, key).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

// Delete removes a key from Redis
func (r *redis) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, key).Err()
}

// IncrWithTTL increments a counter; the TTL is set when the counter is created.
func (r *redis) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
