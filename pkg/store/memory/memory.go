// Package memory provides an in-process Store for tests and single-user CLI
// runs. All data is lost when the process exits.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/unitpile/unitpile/pkg/pile"
	"github.com/unitpile/unitpile/pkg/store"
)

// Store is a mutex-guarded in-memory implementation of store.Store.
type Store struct {
	mu     sync.RWMutex
	habits map[string]pile.Habit
	units  []pile.Unit
}

// New creates an empty memory store.
func New() *Store {
	return &Store{habits: make(map[string]pile.Habit)}
}

// CreateHabit stores a new habit.
func (s *Store) CreateHabit(ctx context.Context, h pile.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits[h.ID] = h
	return nil
}

// GetHabit returns the habit with the given ID, or store.ErrNotFound.
func (s *Store) GetHabit(ctx context.Context, id string) (pile.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.habits[id]
	if !ok {
		return pile.Habit{}, store.ErrNotFound
	}
	return h, nil
}

// ListHabits returns all habits ordered by creation time.
func (s *Store) ListHabits(ctx context.Context) ([]pile.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	habits := make([]pile.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		habits = append(habits, h)
	}
	slices.SortFunc(habits, func(a, b pile.Habit) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return habits, nil
}

// DeleteHabit removes a habit and all of its units.
func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.habits, id)
	s.units = slices.DeleteFunc(s.units, func(u pile.Unit) bool {
		return u.HabitID == id
	})
	return nil
}

// AppendUnit stores one logged unit.
func (s *Store) AppendUnit(ctx context.Context, u pile.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[u.HabitID]; !ok {
		return store.ErrNotFound
	}
	s.units = append(s.units, u)
	return nil
}

// ListUnits returns units in log order, optionally filtered and bounded.
func (s *Store) ListUnits(ctx context.Context, habitID string, limit int) ([]pile.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var units []pile.Unit
	for _, u := range s.units {
		if habitID != "" && u.HabitID != habitID {
			continue
		}
		units = append(units, u)
		if limit > 0 && len(units) == limit {
			break
		}
	}
	return units, nil
}

// CountUnits returns the number of logged units.
func (s *Store) CountUnits(ctx context.Context, habitID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if habitID == "" {
		return int64(len(s.units)), nil
	}
	var n int64
	for _, u := range s.units {
		if u.HabitID == habitID {
			n++
		}
	}
	return n, nil
}

// Close does nothing for the memory store.
func (s *Store) Close(ctx context.Context) error {
	return nil
}

// Ensure Store implements store.Store.
var _ store.Store = (*Store)(nil)
