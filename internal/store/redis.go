package store

import (
	"context"

	"github.com/gofiber/storage/redis/v3"
)

// Redis stores each collection under its key in a Redis database.
// Values never expire.
type Redis struct {
	storage *redis.Storage
}

// NewRedis connects to the Redis instance at url, e.g. redis://localhost:6379/0.
func NewRedis(url string) *Redis {
	return &Redis{storage: redis.New(redis.Config{URL: url})}
}

// Get returns the value stored under key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	return r.storage.GetWithContext(ctx, key)
}

// Set replaces the value stored under key.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.storage.SetWithContext(ctx, key, value, 0)
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.storage.Close()
}
