package memorystorage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lomoval/menu-events/internal/storage"
	"golang.org/x/text/cases"
)

type Storage struct {
	mu     sync.RWMutex
	events map[int64]storage.Event
	users  map[string]storage.User
	idSeq  int64
}

func New() *Storage {
	return &Storage{
		events: make(map[int64]storage.Event),
		users:  make(map[string]storage.User),
	}
}

func (s *Storage) Connect(_ context.Context) error {
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	return nil
}

func (s *Storage) AddEvent(_ context.Context, e *storage.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idSeq++
	e.ID = s.idSeq
	s.events[e.ID] = *e
	return nil
}

func (s *Storage) UpdateEvent(_ context.Context, e storage.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; !ok {
		return fmt.Errorf("failed to update event with id %d: %w", e.ID, storage.ErrNotFoundEvent)
	}
	s.events[e.ID] = e
	return nil
}

func (s *Storage) RemoveEvent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("failed to remove event with id %d: %w", id, storage.ErrNotFoundEvent)
	}
	delete(s.events, id)
	return nil
}

func (s *Storage) GetEvent(_ context.Context, id int64) (storage.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return storage.Event{}, fmt.Errorf("failed to get event with id %d: %w", id, storage.ErrNotFoundEvent)
	}
	return e, nil
}

func (s *Storage) ListEvents(_ context.Context) ([]storage.Event, error) {
	return s.selectEvents(func(storage.Event) bool { return true }), nil
}

func (s *Storage) SearchEvents(_ context.Context, keyword string) ([]storage.Event, error) {
	fold := cases.Fold()
	keyword = fold.String(keyword)
	return s.selectEvents(func(e storage.Event) bool {
		return strings.Contains(fold.String(e.Description), keyword)
	}), nil
}

func (s *Storage) GetUser(_ context.Context, id string) (storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return storage.User{}, fmt.Errorf("failed to get user %q: %w", id, storage.ErrNotFoundUser)
	}
	return u, nil
}

func (s *Storage) SaveUser(_ context.Context, u storage.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

// Result is ordered by start time, then by ID.
func (s *Storage) selectEvents(match func(storage.Event) bool) []storage.Event {
	events := make([]storage.Event, 0)
	s.mu.RLock()
	for _, event := range s.events {
		if match(event) {
			events = append(events, event)
		}
	}
	s.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		if events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].ID < events[j].ID
		}
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events
}
