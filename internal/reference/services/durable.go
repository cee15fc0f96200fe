package services

import (
	"context"
	"errors"

	"go-evkeeper/pkg/database"

	"github.com/redis/go-redis/v9"
)

// DurableStore is the restart-surviving cache tier. Writes are
// idempotent upserts keyed by resource key; concurrent writers of the
// same key converge because the value is derived from the same
// immutable upstream resource either way.
type DurableStore interface {
	// Get unmarshals the stored value for key into dest. The boolean
	// reports whether the key existed.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores the value for key, overwriting any previous value.
	Set(ctx context.Context, key string, value any) error
}

// RedisStore implements DurableStore on Redis. Entries carry no TTL:
// reference data does not change within the operating horizon.
type RedisStore struct {
	redis *database.Redis
}

// NewRedisStore creates a Redis-backed durable store
func NewRedisStore(r *database.Redis) *RedisStore {
	return &RedisStore{redis: r}
}

func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	err := s.redis.GetJSON(ctx, key, dest)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // cache miss
		}
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	return s.redis.SetJSON(ctx, key, value, 0)
}
