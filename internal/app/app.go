package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lomoval/menu-events/internal/flags"
	"github.com/lomoval/menu-events/internal/rabbit"
	"github.com/lomoval/menu-events/internal/storage"
	"github.com/lomoval/menu-events/internal/validator"
	log "github.com/sirupsen/logrus"
)

type ChangePublisher interface {
	Publish(ctx context.Context, m rabbit.Message) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, rabbit.Message) error {
	return nil
}

// EventInput carries raw form values of a new event. Nil means the value was not sent.
type EventInput struct {
	Description   *string `schema:"description"`
	StartDatetime *string `schema:"start_datetime"`
	EndDatetime   *string `schema:"end_datetime"`
}

// Value returns the raw value sent for f.
func (in EventInput) Value(f Field) *string {
	switch f {
	case FieldDescription:
		return in.Description
	case FieldStartTime:
		return in.StartDatetime
	case FieldEndTime:
		return in.EndDatetime
	default:
		return nil
	}
}

type App struct {
	storage   storage.EventStorage
	flags     flags.Store
	publisher ChangePublisher
	location  *time.Location
	now       func() time.Time
}

type Option func(a *App)

func WithPublisher(p ChangePublisher) Option {
	return func(a *App) {
		a.publisher = p
	}
}

func WithLocation(loc *time.Location) Option {
	return func(a *App) {
		a.location = loc
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

func New(events storage.EventStorage, flagStore flags.Store, opts ...Option) *App {
	a := &App{
		storage:   events,
		flags:     flagStore,
		publisher: nopPublisher{},
		location:  time.Local,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Location() *time.Location {
	return a.location
}

// Overview returns all events split by category relative to the current week.
func (a *App) Overview(ctx context.Context) (Buckets, error) {
	events, err := a.listEvents(ctx)
	if err != nil {
		return nil, err
	}
	return Partition(events, a.now().In(a.location)), nil
}

func (a *App) EventsByCategory(ctx context.Context, c Category) ([]storage.Event, error) {
	buckets, err := a.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return buckets[c], nil
}

func (a *App) Search(ctx context.Context, keyword string) ([]storage.Event, error) {
	events, err := a.storage.SearchEvents(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search events by %q: %w", keyword, err)
	}
	return a.localize(events), nil
}

func (a *App) Event(ctx context.Context, id int64) (storage.Event, error) {
	e, err := a.storage.GetEvent(ctx, id)
	if err != nil {
		return storage.Event{}, err
	}
	return a.localizeEvent(e), nil
}

func (a *App) AddEvent(ctx context.Context, user storage.User, in EventInput) (storage.Event, error) {
	e := storage.Event{}
	for _, f := range Fields {
		value := in.Value(f)
		if value == nil {
			return storage.Event{}, &ParseError{Field: f.String(), Err: ErrMissingValue}
		}
		if err := f.apply(&e, *value, a.location); err != nil {
			return storage.Event{}, err
		}
	}
	if err := validate(e); err != nil {
		return storage.Event{}, err
	}

	if err := a.storage.AddEvent(ctx, &e); err != nil {
		return storage.Event{}, &StoreError{Op: "add", Err: err}
	}
	log.WithField("eventId", e.ID).WithField("userId", user.ID).Info("event added")
	a.raise(ctx, flags.EventAdded)
	a.publish(ctx, rabbit.ActionAdded, e, user)
	return e, nil
}

// EditField sets a single field of the event from raw user input.
func (a *App) EditField(ctx context.Context, user storage.User, id int64, f Field, raw string) (storage.Event, error) {
	e, err := a.storage.GetEvent(ctx, id)
	if err != nil {
		return storage.Event{}, err
	}
	e = a.localizeEvent(e)
	if err := f.apply(&e, raw, a.location); err != nil {
		return storage.Event{}, err
	}
	if err := validate(e); err != nil {
		return storage.Event{}, err
	}

	if err := a.storage.UpdateEvent(ctx, e); err != nil {
		return storage.Event{}, &StoreError{Op: "update", Err: err}
	}
	log.WithField("eventId", e.ID).WithField("field", f.String()).WithField("userId", user.ID).Info("event edited")
	a.raise(ctx, flags.EventEdited)
	a.publish(ctx, rabbit.ActionEdited, e, user)
	return e, nil
}

func (a *App) DeleteEvent(ctx context.Context, user storage.User, id int64) error {
	e, err := a.storage.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if err := a.storage.RemoveEvent(ctx, id); err != nil {
		return &StoreError{Op: "remove", Err: err}
	}
	log.WithField("eventId", id).WithField("userId", user.ID).Info("event deleted")
	a.raise(ctx, flags.EventDeleted)
	a.publish(ctx, rabbit.ActionDeleted, a.localizeEvent(e), user)
	return nil
}

// TakeNotices returns and clears raised flags in the order of flags.All.
func (a *App) TakeNotices(ctx context.Context) []flags.Flag {
	var taken []flags.Flag
	for _, f := range flags.All {
		ok, err := a.flags.Take(ctx, f)
		if err != nil {
			log.Errorf("failed to take flag %s: %v", f, err)
			continue
		}
		if ok {
			taken = append(taken, f)
		}
	}
	return taken
}

func (a *App) raise(ctx context.Context, f flags.Flag) {
	if err := a.flags.Set(ctx, f); err != nil {
		log.Errorf("failed to set flag %s: %v", f, err)
	}
}

func (a *App) publish(ctx context.Context, action rabbit.Action, e storage.Event, user storage.User) {
	err := a.publisher.Publish(ctx, rabbit.Message{
		Action:      action,
		EventID:     e.ID,
		Description: e.Description,
		Start:       e.StartTime,
		End:         e.EndTime,
		UserID:      user.ID,
		Time:        a.now(),
	})
	if err != nil {
		log.Warnf("failed to publish %s change of event %d: %v", action, e.ID, err)
	}
}

func (a *App) listEvents(ctx context.Context) ([]storage.Event, error) {
	events, err := a.storage.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return a.localize(events), nil
}

func (a *App) localize(events []storage.Event) []storage.Event {
	for i := range events {
		events[i] = a.localizeEvent(events[i])
	}
	return events
}

func (a *App) localizeEvent(e storage.Event) storage.Event {
	e.StartTime = e.StartTime.In(a.location)
	e.EndTime = e.EndTime.In(a.location)
	return e
}

func validate(e storage.Event) error {
	err := validator.Validate(e)
	if err == nil {
		return nil
	}
	var vErrors validator.ValidationErrors
	if errors.As(err, &vErrors) {
		return &ValidationError{Err: vErrors}
	}
	return fmt.Errorf("failed to validate event: %w", err)
}
