package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFoundEvent    = errors.New("event not found")
	ErrNotFoundUser     = errors.New("user not found")
	ErrConnectionFailed = errors.New("failed to connect")
)

type EventStorage interface {
	AddEvent(ctx context.Context, e *Event) error
	UpdateEvent(ctx context.Context, e Event) error
	RemoveEvent(ctx context.Context, id int64) error
	GetEvent(ctx context.Context, id int64) (Event, error)
	// ListEvents returns all events ordered by start time.
	ListEvents(ctx context.Context) ([]Event, error)
	// SearchEvents returns events whose description contains keyword, ignoring case.
	SearchEvents(ctx context.Context, keyword string) ([]Event, error)
}

type UserStorage interface {
	GetUser(ctx context.Context, id string) (User, error)
	// SaveUser inserts the user or overwrites the stored record with the same ID.
	SaveUser(ctx context.Context, u User) error
}

type Storage interface {
	EventStorage
	UserStorage
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
}
