package redisx

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Store is the Redis-backed key-value substrate for wizard drafts.
// Writes are best-effort with a TTL so abandoned drafts expire on their own.
type Store struct {
	RDB *redis.Client
}

func NewStore(rdb *redis.Client) *Store { return &Store{RDB: rdb} }

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.RDB.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.RDB.Set(ctx, key, value, TTLDraft).Err()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.RDB.Del(ctx, keys...).Err()
}
