package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfigDefaults(t *testing.T) {
	config, err := NewConfig(writeConfig(t, "logger:\n  level: INFO\n"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", config.HTTPServer.Host)
	require.Equal(t, 8005, config.HTTPServer.Port)
	require.Equal(t, 10*time.Second, config.HTTPServer.ReadTimeout)
	require.Equal(t, "INFO", config.Logger.Level)
	require.Equal(t, "memory", config.Storage.StorageType)
	require.Equal(t, "memory", config.Flags.Type)
	require.Equal(t, defaultSecret, config.Auth.Secret)
	require.False(t, config.Auth.RefreshStaff)
	require.Equal(t, 5*time.Second, config.Profile.Timeout)
	require.False(t, config.Rabbit.Enabled)
	require.Equal(t, "events.changes", config.Rabbit.Queue)
	require.Equal(t, "UTC", config.Timezone)
}

func TestNewConfigEnvIndirection(t *testing.T) {
	t.Setenv("EVENTS_TEST_SECRET", "from-env")
	t.Setenv("EVENTS_TEST_DB_PASSWORD", "db-pass")
	config, err := NewConfig(writeConfig(t, `
httpServer:
  port: 9000
auth:
  secret: $env:EVENTS_TEST_SECRET
  refreshStaff: true
storage:
  storageType: sql
  database:
    host: localhost
    port: 5432
    password: $env:EVENTS_TEST_DB_PASSWORD
flags:
  type: redis
  redis:
    url: redis://localhost:6379/0
timezone: Europe/Moscow
`))
	require.NoError(t, err)
	require.Equal(t, 9000, config.HTTPServer.Port)
	require.Equal(t, "from-env", config.Auth.Secret)
	require.True(t, config.Auth.RefreshStaff)
	require.Equal(t, "sql", config.Storage.StorageType)
	require.Equal(t, "db-pass", config.Storage.Database.Password)
	require.Equal(t, 5432, config.Storage.Database.Port)
	require.Equal(t, "redis", config.Flags.Type)
	require.Equal(t, "redis://localhost:6379/0", config.Flags.Redis.URL)
	require.Equal(t, "events:", config.Flags.Redis.Prefix)
	require.Equal(t, "Europe/Moscow", config.Timezone)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
