package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const contentTypeJSON = "application/json"

type Action string

const (
	ActionAdded   Action = "added"
	ActionEdited  Action = "edited"
	ActionDeleted Action = "deleted"
)

// Message describes one change of an event.
type Message struct {
	Action      Action    `json:"action"`
	EventID     int64     `json:"eventId"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	UserID      string    `json:"userId"`
	Time        time.Time `json:"time"`
}

func ParseMessage(body []byte) (Message, error) {
	m := Message{}
	if err := json.Unmarshal(body, &m); err != nil {
		return Message{}, fmt.Errorf("failed to parse change message: %w", err)
	}
	return m, nil
}

type publisher interface {
	Publish(contentType string, body []byte) error
}

// ChangePublisher sends change messages as JSON.
type ChangePublisher struct {
	provider publisher
}

func NewChangePublisher(provider *Provider) *ChangePublisher {
	return &ChangePublisher{provider: provider}
}

func (p *ChangePublisher) Publish(_ context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode change message: %w", err)
	}
	if err := p.provider.Publish(contentTypeJSON, body); err != nil {
		return fmt.Errorf("failed to publish change message: %w", err)
	}
	return nil
}
