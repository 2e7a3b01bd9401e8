// Package flags keeps one-shot notices raised by mutating requests until the
// next home menu render takes them.
package flags

import (
	"context"
	"fmt"
)

type Flag string

const (
	EventAdded   Flag = "event_added"
	EventEdited  Flag = "event_edited"
	EventDeleted Flag = "event_deleted"
)

// All lists flags in the order the home menu takes them.
var All = []Flag{EventAdded, EventEdited, EventDeleted}

type Store interface {
	Set(ctx context.Context, f Flag) error
	// Take reports whether f was set and clears it in the same step.
	Take(ctx context.Context, f Flag) (bool, error)
	Close() error
}

type Config struct {
	Type  string
	Redis RedisConfig
}

func New(config Config) (Store, error) {
	switch config.Type {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(config.Redis)
	default:
		return nil, fmt.Errorf("unknown flags store type %s", config.Type)
	}
}
