package flags

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu  sync.Mutex
	set map[Flag]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{set: make(map[Flag]struct{})}
}

func (s *MemoryStore) Set(_ context.Context, f Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set[f] = struct{}{}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, f Flag) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[f]
	delete(s.set, f)
	return ok, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
