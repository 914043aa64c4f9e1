package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a [Store] backed by a Redis-compatible server. Values are stored
// without TTL; the engine owns key lifecycle explicitly.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis wraps an existing client. The caller retains ownership of the
// client and is responsible for closing it.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Get retrieves the value stored under key. A missing key is (_, false, nil).
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return val, true, nil
}

// Set stores value under key, replacing any previous value.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Remove deletes key. Deleting a key that was never set is not an error.
func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
