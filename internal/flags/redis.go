package flags

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	URL    string
	Prefix string
}

// RedisStore shares flags between all instances pointing to the same Redis.
// Take relies on GETDEL, so Redis 6.2 or newer is required.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(config RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &RedisStore{rdb: redis.NewClient(opts), prefix: config.Prefix}, nil
}

func (s *RedisStore) key(f Flag) string {
	return s.prefix + string(f)
}

func (s *RedisStore) Set(ctx context.Context, f Flag) error {
	if err := s.rdb.Set(ctx, s.key(f), 1, 0).Err(); err != nil {
		return fmt.Errorf("failed to set flag %s: %w", f, err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, f Flag) (bool, error) {
	err := s.rdb.GetDel(ctx, s.key(f)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to take flag %s: %w", f, err)
	}
	return true, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
