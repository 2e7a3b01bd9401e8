package mongostorage

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/lomoval/menu-events/internal/storage"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	eventsCollection   = "events"
	usersCollection    = "users"
	countersCollection = "counters"
	eventsCounterID    = "events"
)

type Config struct {
	URI      string
	Database string
}

type Storage struct {
	uri      string
	database string
	client   *mongo.Client
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func New(config Config) *Storage {
	return &Storage{uri: config.URI, database: config.Database}
}

func (s *Storage) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		log.Errorf("failed to connect: %v", err)
		return storage.ErrConnectionFailed
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Errorf("failed to ping: %v", err)
		_ = client.Disconnect(ctx)
		return storage.ErrConnectionFailed
	}
	s.client = client
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

func (s *Storage) collection(name string) *mongo.Collection {
	return s.client.Database(s.database).Collection(name)
}

// Event IDs are numeric, so they come from a counter document rather than ObjectIDs.
func (s *Storage) nextEventID(ctx context.Context) (int64, error) {
	var c counter
	err := s.collection(countersCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": eventsCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate event id: %w", err)
	}
	return c.Seq, nil
}

func (s *Storage) AddEvent(ctx context.Context, e *storage.Event) error {
	id, err := s.nextEventID(ctx)
	if err != nil {
		return err
	}
	e.ID = id
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	if _, err := s.collection(eventsCollection).InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

func (s *Storage) UpdateEvent(ctx context.Context, e storage.Event) error {
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	res, err := s.collection(eventsCollection).ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("failed to update event with id %d: %w", e.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to update event with id %d: %w", e.ID, storage.ErrNotFoundEvent)
	}
	return nil
}

func (s *Storage) RemoveEvent(ctx context.Context, id int64) error {
	res, err := s.collection(eventsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to remove event with id %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("failed to remove event with id %d: %w", id, storage.ErrNotFoundEvent)
	}
	return nil
}

func (s *Storage) GetEvent(ctx context.Context, id int64) (storage.Event, error) {
	var e storage.Event
	err := s.collection(eventsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.Event{}, fmt.Errorf("failed to get event with id %d: %w", id, storage.ErrNotFoundEvent)
	}
	return e, err
}

func (s *Storage) ListEvents(ctx context.Context) ([]storage.Event, error) {
	return s.find(ctx, bson.M{})
}

func (s *Storage) SearchEvents(ctx context.Context, keyword string) ([]storage.Event, error) {
	return s.find(ctx, bson.M{
		"description": primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"},
	})
}

func (s *Storage) find(ctx context.Context, filter bson.M) ([]storage.Event, error) {
	cur, err := s.collection(eventsCollection).Find(
		ctx,
		filter,
		options.Find().SetSort(bson.D{{Key: "startDatetime", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}

	events := make([]storage.Event, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

func (s *Storage) GetUser(ctx context.Context, id string) (storage.User, error) {
	var u storage.User
	err := s.collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.User{}, fmt.Errorf("failed to get user %q: %w", id, storage.ErrNotFoundUser)
	}
	return u, err
}

func (s *Storage) SaveUser(ctx context.Context, u storage.User) error {
	_, err := s.collection(usersCollection).ReplaceOne(
		ctx,
		bson.M{"_id": u.ID},
		u,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save user %q: %w", u.ID, err)
	}
	return nil
}
