//go:build redis

package flags

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://127.0.0.1:6379/0"
	}
	s, err := NewRedisStore(RedisConfig{URL: url, Prefix: "test:" + uuid.NewString() + ":"})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	ok, err := s.Take(ctx, EventEdited)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, EventEdited))
	ok, err = s.Take(ctx, EventEdited)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Take(ctx, EventEdited)
	require.NoError(t, err)
	require.False(t, ok)
}
