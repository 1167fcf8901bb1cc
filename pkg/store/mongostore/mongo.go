// Package mongostore provides a MongoDB-backed Store for the hosted service.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unitpile/unitpile/pkg/pile"
	"github.com/unitpile/unitpile/pkg/store"
)

const (
	habitsCollection = "habits"
	unitsCollection  = "units"
)

// Store persists habits and units in MongoDB collections.
type Store struct {
	client *mongo.Client
	habits *mongo.Collection
	units  *mongo.Collection
}

// Config holds connection settings for the MongoDB backend.
type Config struct {
	URI      string
	Database string
}

// New connects to MongoDB, verifies the connection, and ensures the indexes
// the unit queries depend on.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		cfg.Database = "unitpile"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client: client,
		habits: db.Collection(habitsCollection),
		units:  db.Collection(unitsCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.units.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "habit_id", Value: 1}, {Key: "logged_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create unit index: %w", err)
	}
	_, err = s.habits.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create habit index: %w", err)
	}
	return nil
}

// CreateHabit stores a new habit.
func (s *Store) CreateHabit(ctx context.Context, h pile.Habit) error {
	if _, err := s.habits.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}
	return nil
}

// GetHabit returns the habit with the given ID, or store.ErrNotFound.
func (s *Store) GetHabit(ctx context.Context, id string) (pile.Habit, error) {
	var h pile.Habit
	err := s.habits.FindOne(ctx, bson.M{"id": id}).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pile.Habit{}, store.ErrNotFound
	}
	if err != nil {
		return pile.Habit{}, fmt.Errorf("find habit: %w", err)
	}
	return h, nil
}

// ListHabits returns all habits ordered by creation time.
func (s *Store) ListHabits(ctx context.Context) ([]pile.Habit, error) {
	cur, err := s.habits.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	var habits []pile.Habit
	if err := cur.All(ctx, &habits); err != nil {
		return nil, fmt.Errorf("decode habits: %w", err)
	}
	return habits, nil
}

// DeleteHabit removes a habit and all of its units.
func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	res, err := s.habits.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	if _, err := s.units.DeleteMany(ctx, bson.M{"habit_id": id}); err != nil {
		return fmt.Errorf("delete units: %w", err)
	}
	return nil
}

// AppendUnit stores one logged unit after checking the habit exists.
func (s *Store) AppendUnit(ctx context.Context, u pile.Unit) error {
	if _, err := s.GetHabit(ctx, u.HabitID); err != nil {
		return err
	}
	if _, err := s.units.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// ListUnits returns units in log order, optionally filtered and bounded.
func (s *Store) ListUnits(ctx context.Context, habitID string, limit int) ([]pile.Unit, error) {
	filter := bson.M{}
	if habitID != "" {
		filter["habit_id"] = habitID
	}

	opts := options.Find().SetSort(bson.D{{Key: "logged_at", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cur, err := s.units.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}

	var units []pile.Unit
	if err := cur.All(ctx, &units); err != nil {
		return nil, fmt.Errorf("decode units: %w", err)
	}
	return units, nil
}

// CountUnits returns the number of logged units.
func (s *Store) CountUnits(ctx context.Context, habitID string) (int64, error) {
	filter := bson.M{}
	if habitID != "" {
		filter["habit_id"] = habitID
	}
	n, err := s.units.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count units: %w", err)
	}
	return n, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure Store implements store.Store.
var _ store.Store = (*Store)(nil)
