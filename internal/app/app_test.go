package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lomoval/menu-events/internal/flags"
	"github.com/lomoval/menu-events/internal/rabbit"
	"github.com/lomoval/menu-events/internal/storage"
	memorystorage "github.com/lomoval/menu-events/internal/storage/memory"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2020, 12, 30, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []rabbit.Message
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, m rabbit.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, m)
	return p.err
}

type failingStorage struct {
	*memorystorage.Storage
}

func (s failingStorage) AddEvent(context.Context, *storage.Event) error {
	return storage.ErrConnectionFailed
}

func (s failingStorage) UpdateEvent(context.Context, storage.Event) error {
	return storage.ErrConnectionFailed
}

func newTestApp(events storage.EventStorage) (*App, *flags.MemoryStore, *recordingPublisher) {
	flagStore := flags.NewMemoryStore()
	publisher := &recordingPublisher{}
	a := New(events, flagStore,
		WithPublisher(publisher),
		WithLocation(time.UTC),
		WithClock(func() time.Time { return testNow }),
	)
	return a, flagStore, publisher
}

func strPtr(s string) *string {
	return &s
}

func validInput() EventInput {
	return EventInput{
		Description:   strPtr("Team sync"),
		StartDatetime: strPtr("31-12-2020 12:00"),
		EndDatetime:   strPtr("31-12-2020 14:00"),
	}
}

func TestAddEvent(t *testing.T) {
	ctx := context.Background()
	a, flagStore, publisher := newTestApp(memorystorage.New())
	user := storage.User{ID: "1", IsStaff: true}

	e, err := a.AddEvent(ctx, user, validInput())
	require.NoError(t, err)
	require.Equal(t, int64(1), e.ID)
	require.Equal(t, time.Date(2020, 12, 31, 12, 0, 0, 0, time.UTC), e.StartTime)

	stored, err := a.Event(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, "Team sync", stored.Description)

	taken, err := flagStore.Take(ctx, flags.EventAdded)
	require.NoError(t, err)
	require.True(t, taken)

	require.Len(t, publisher.messages, 1)
	require.Equal(t, rabbit.ActionAdded, publisher.messages[0].Action)
	require.Equal(t, "1", publisher.messages[0].UserID)
	require.Equal(t, testNow, publisher.messages[0].Time)
}

func TestAddEventFailures(t *testing.T) {
	ctx := context.Background()
	tooLong := strings.Repeat("x", storage.DescriptionMaxLen+1)
	tests := []struct {
		name  string
		input func(in *EventInput)
		check func(t *testing.T, err error)
	}{
		{
			name:  "missing end",
			input: func(in *EventInput) { in.EndDatetime = nil },
			check: func(t *testing.T, err error) {
				t.Helper()
				require.ErrorIs(t, err, ErrMissingValue)
			},
		},
		{
			name:  "bad start format",
			input: func(in *EventInput) { in.StartDatetime = strPtr("2020-12-31T12:00") },
			check: func(t *testing.T, err error) {
				t.Helper()
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, "start_datetime", parseErr.Field)
			},
		},
		{
			name:  "description too long",
			input: func(in *EventInput) { in.Description = &tooLong },
			check: func(t *testing.T, err error) {
				t.Helper()
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := memorystorage.New()
			a, flagStore, publisher := newTestApp(s)
			in := validInput()
			tt.input(&in)

			_, err := a.AddEvent(ctx, storage.User{ID: "1"}, in)
			tt.check(t, err)

			events, err := s.ListEvents(ctx)
			require.NoError(t, err)
			require.Empty(t, events)
			require.Empty(t, publisher.messages)
			taken, _ := flagStore.Take(ctx, flags.EventAdded)
			require.False(t, taken)
		})
	}
}

func TestAddEventStoreFailure(t *testing.T) {
	a, _, _ := newTestApp(failingStorage{memorystorage.New()})
	_, err := a.AddEvent(context.Background(), storage.User{ID: "1"}, validInput())
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	require.ErrorIs(t, err, storage.ErrConnectionFailed)
}

func TestPublishFailureIsIgnored(t *testing.T) {
	a, _, publisher := newTestApp(memorystorage.New())
	publisher.err = errors.New("broker is down")
	_, err := a.AddEvent(context.Background(), storage.User{ID: "1"}, validInput())
	require.NoError(t, err)
}

func TestEditField(t *testing.T) {
	ctx := context.Background()
	a, flagStore, publisher := newTestApp(memorystorage.New())
	user := storage.User{ID: "1", IsStaff: true}
	e, err := a.AddEvent(ctx, user, validInput())
	require.NoError(t, err)

	edited, err := a.EditField(ctx, user, e.ID, FieldEndTime, "01-01-2021 09:30")
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, 1, 1, 9, 30, 0, 0, time.UTC), edited.EndTime)
	require.Equal(t, e.StartTime, edited.StartTime)
	require.Equal(t, e.Description, edited.Description)

	edited, err = a.EditField(ctx, user, e.ID, FieldDescription, "")
	require.NoError(t, err)
	require.Empty(t, edited.Description)

	taken, err := flagStore.Take(ctx, flags.EventEdited)
	require.NoError(t, err)
	require.True(t, taken)
	require.Len(t, publisher.messages, 3)
	require.Equal(t, rabbit.ActionEdited, publisher.messages[2].Action)

	_, err = a.EditField(ctx, user, e.ID, FieldStartTime, "tomorrow")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)

	_, err = a.EditField(ctx, user, 100, FieldDescription, "new")
	require.ErrorIs(t, err, storage.ErrNotFoundEvent)
}

func TestEditFieldStoreFailure(t *testing.T) {
	ctx := context.Background()
	s := memorystorage.New()
	e := storage.Event{Description: "Old", StartTime: testNow, EndTime: testNow}
	require.NoError(t, s.AddEvent(ctx, &e))

	a, flagStore, _ := newTestApp(failingStorage{s})
	_, err := a.EditField(ctx, storage.User{ID: "1"}, e.ID, FieldDescription, "New")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	taken, _ := flagStore.Take(ctx, flags.EventEdited)
	require.False(t, taken)
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	a, flagStore, publisher := newTestApp(memorystorage.New())
	user := storage.User{ID: "1", IsStaff: true}
	e, err := a.AddEvent(ctx, user, validInput())
	require.NoError(t, err)

	require.NoError(t, a.DeleteEvent(ctx, user, e.ID))
	_, err = a.Event(ctx, e.ID)
	require.ErrorIs(t, err, storage.ErrNotFoundEvent)
	require.ErrorIs(t, a.DeleteEvent(ctx, user, e.ID), storage.ErrNotFoundEvent)

	taken, err := flagStore.Take(ctx, flags.EventDeleted)
	require.NoError(t, err)
	require.True(t, taken)
	require.Equal(t, rabbit.ActionDeleted, publisher.messages[len(publisher.messages)-1].Action)
}

func TestTakeNotices(t *testing.T) {
	ctx := context.Background()
	a, flagStore, _ := newTestApp(memorystorage.New())
	require.Empty(t, a.TakeNotices(ctx))

	require.NoError(t, flagStore.Set(ctx, flags.EventDeleted))
	require.NoError(t, flagStore.Set(ctx, flags.EventAdded))
	require.Equal(t, []flags.Flag{flags.EventAdded, flags.EventDeleted}, a.TakeNotices(ctx))
	require.Empty(t, a.TakeNotices(ctx))
}

func TestOverviewAndSearch(t *testing.T) {
	ctx := context.Background()
	s := memorystorage.New()
	a, _, _ := newTestApp(s)
	for _, e := range []storage.Event{
		{Description: "Retro", StartTime: testNow.AddDate(0, 0, -14)},
		{Description: "Sync with team", StartTime: testNow.Add(time.Hour)},
		{Description: "Release", StartTime: testNow.AddDate(0, 1, 0)},
		{Description: "Team offsite", StartTime: testNow.AddDate(0, 2, 0)},
	} {
		e := e
		require.NoError(t, s.AddEvent(ctx, &e))
	}

	buckets, err := a.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, buckets[CurrentWeek], 1)
	require.Len(t, buckets[FutureEvents], 2)
	require.Len(t, buckets[PastEvents], 1)

	future, err := a.EventsByCategory(ctx, FutureEvents)
	require.NoError(t, err)
	require.Equal(t, "Release", future[0].Description)

	found, err := a.Search(ctx, "TEAM")
	require.NoError(t, err)
	require.Len(t, found, 2)

	found, err = a.Search(ctx, "absent")
	require.NoError(t, err)
	require.Empty(t, found)
}
