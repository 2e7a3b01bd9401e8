//go:build mongo

package mongostorage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/lomoval/menu-events/internal/storage"
	mongostorage "github.com/lomoval/menu-events/internal/storage/mongo"
	"github.com/stretchr/testify/require"
)

func createStorage(t *testing.T) *mongostorage.Storage {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017"
	}
	s := mongostorage.New(mongostorage.Config{URI: uri, Database: "testing_" + time.Now().Format("150405.000000")})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Connect(ctx))
	t.Cleanup(func() {
		s.Close(context.Background())
	})
	return s
}

func TestStorage(t *testing.T) {
	initDate := time.Date(2021, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("event lifecycle", func(t *testing.T) {
		s := createStorage(t)
		ctx := context.Background()

		first := storage.Event{Description: "Launch Party", StartTime: initDate, EndTime: initDate.Add(time.Hour)}
		second := storage.Event{Description: "Board meeting", StartTime: initDate.Add(-time.Hour), EndTime: initDate}
		require.NoError(t, s.AddEvent(ctx, &first))
		require.NoError(t, s.AddEvent(ctx, &second))
		require.Equal(t, first.ID+1, second.ID)

		list, err := s.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, second.ID, list[0].ID)

		found, err := s.SearchEvents(ctx, "launch")
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Equal(t, first.ID, found[0].ID)

		first.Description = "Launch"
		require.NoError(t, s.UpdateEvent(ctx, first))
		actual, err := s.GetEvent(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, "Launch", actual.Description)
		require.True(t, first.StartTime.Equal(actual.StartTime))

		require.NoError(t, s.RemoveEvent(ctx, first.ID))
		require.ErrorIs(t, s.RemoveEvent(ctx, first.ID), storage.ErrNotFoundEvent)
		_, err = s.GetEvent(ctx, first.ID)
		require.ErrorIs(t, err, storage.ErrNotFoundEvent)
	})

	t.Run("users", func(t *testing.T) {
		s := createStorage(t)
		ctx := context.Background()

		_, err := s.GetUser(ctx, "7")
		require.ErrorIs(t, err, storage.ErrNotFoundUser)

		u := storage.User{ID: "7", Username: "7", IsStaff: true, LastName: "Lovelace"}
		require.NoError(t, s.SaveUser(ctx, u))
		require.NoError(t, s.SaveUser(ctx, u))

		actual, err := s.GetUser(ctx, "7")
		require.NoError(t, err)
		require.Equal(t, u, actual)
	})
}
