package sqlstorage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/lomoval/menu-events/internal/storage"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const eventColumns = "id, description, start_datetime, end_datetime"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	// Migrate applies embedded migrations on connect.
	Migrate bool
}

type Storage struct {
	host     string
	port     int
	database string
	username string
	password string
	migrate  bool
	db       *sqlx.DB
}

func New(config Config) *Storage {
	return &Storage{
		host:     config.Host,
		port:     config.Port,
		database: config.Database,
		username: config.Username,
		password: config.Password,
		migrate:  config.Migrate,
	}
}

func (s *Storage) Connect(ctx context.Context) error {
	db, err := sqlx.ConnectContext(
		ctx,
		"postgres",
		fmt.Sprintf(
			"sslmode=disable host=%s port=%d dbname=%s user=%s password=%s",
			s.host, s.port, s.database, s.username, s.password),
	)
	if err != nil {
		log.Errorf("failed to connect: %v", err)
		return storage.ErrConnectionFailed
	}
	s.db = db

	if s.migrate {
		if err := s.runMigrations(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

// The migrate instance is not closed: closing it closes the shared *sql.DB.
func (s *Storage) runMigrations() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}
	driver, err := migratepg.WithInstance(s.db.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("database migrations: no changes")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrations applied")
	return nil
}

func (s *Storage) AddEvent(ctx context.Context, e *storage.Event) error {
	err := s.db.GetContext(
		ctx,
		&e.ID,
		"INSERT INTO events(description, start_datetime, end_datetime) VALUES($1, $2, $3) RETURNING id",
		e.Description, e.StartTime.UTC(), e.EndTime.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

func (s *Storage) UpdateEvent(ctx context.Context, e storage.Event) error {
	var found bool
	err := s.db.GetContext(
		ctx,
		&found,
		"UPDATE events SET description=$2, start_datetime=$3, end_datetime=$4 WHERE id=$1 RETURNING TRUE",
		e.ID, e.Description, e.StartTime.UTC(), e.EndTime.UTC(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to update event with id %d: %w", e.ID, storage.ErrNotFoundEvent)
	}
	return err
}

func (s *Storage) RemoveEvent(ctx context.Context, id int64) error {
	var found bool
	err := s.db.GetContext(ctx, &found, "DELETE FROM events WHERE id=$1 RETURNING TRUE", id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to remove event with id %d: %w", id, storage.ErrNotFoundEvent)
	}
	return err
}

func (s *Storage) GetEvent(ctx context.Context, id int64) (storage.Event, error) {
	var e storage.Event
	err := s.db.GetContext(ctx, &e, "SELECT "+eventColumns+" FROM events WHERE id=$1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Event{}, fmt.Errorf("failed to get event with id %d: %w", id, storage.ErrNotFoundEvent)
	}
	return e, err
}

func (s *Storage) ListEvents(ctx context.Context) ([]storage.Event, error) {
	events := make([]storage.Event, 0)
	err := s.db.SelectContext(ctx, &events, "SELECT "+eventColumns+" FROM events ORDER BY start_datetime, id")
	return events, err
}

func (s *Storage) SearchEvents(ctx context.Context, keyword string) ([]storage.Event, error) {
	events := make([]storage.Event, 0)
	err := s.db.SelectContext(
		ctx,
		&events,
		"SELECT "+eventColumns+" FROM events WHERE description ILIKE '%' || $1 || '%' ORDER BY start_datetime, id",
		likeEscaper.Replace(keyword),
	)
	return events, err
}

func (s *Storage) GetUser(ctx context.Context, id string) (storage.User, error) {
	var u storage.User
	err := s.db.GetContext(
		ctx,
		&u,
		"SELECT id, username, is_staff, first_name, last_name FROM users WHERE id=$1",
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.User{}, fmt.Errorf("failed to get user %q: %w", id, storage.ErrNotFoundUser)
	}
	return u, err
}

func (s *Storage) SaveUser(ctx context.Context, u storage.User) error {
	_, err := s.db.NamedExecContext(
		ctx,
		"INSERT INTO users(id, username, is_staff, first_name, last_name) "+
			"VALUES(:id, :username, :is_staff, :first_name, :last_name) "+
			"ON CONFLICT (id) DO UPDATE SET username=EXCLUDED.username, is_staff=EXCLUDED.is_staff, "+
			"first_name=EXCLUDED.first_name, last_name=EXCLUDED.last_name",
		u,
	)
	if err != nil {
		return fmt.Errorf("failed to save user %q: %w", u.ID, err)
	}
	return nil
}
