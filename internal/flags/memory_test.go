package flags

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	ok, err := s.Take(ctx, EventAdded)
	require.NoError(t, err)
	require.False(t, ok, "absent flag reads as false")

	require.NoError(t, s.Set(ctx, EventAdded))
	require.NoError(t, s.Set(ctx, EventAdded))

	ok, err = s.Take(ctx, EventEdited)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.Take(ctx, EventAdded)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Take(ctx, EventAdded)
	require.NoError(t, err)
	require.False(t, ok, "flag is cleared by the first take")
}

func TestMemoryStoreTakeOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, EventDeleted))

	var taken int32
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Take(ctx, EventDeleted)
			if err == nil && ok {
				atomic.AddInt32(&taken, 1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), taken)
}

func TestNew(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	s, err = New(Config{Type: "redis", Redis: RedisConfig{URL: "redis://127.0.0.1:6379/0"}})
	require.NoError(t, err)
	require.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	_, err = New(Config{Type: "redis", Redis: RedisConfig{URL: "::bad::"}})
	require.Error(t, err)

	_, err = New(Config{Type: "memcached"})
	require.Error(t, err)
}
