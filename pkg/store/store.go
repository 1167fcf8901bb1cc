// Package store defines persistence for habits and logged units.
//
// The layout core never talks to a store: it receives item lists and frame
// dimensions and returns geometry. Stores exist to supply the "count of
// units" input to the pipeline and the API. Two implementations are
// provided: an in-process memory store (tests, single-user CLI) and a
// MongoDB store (hosted service).
package store

import (
	"context"
	"errors"

	"github.com/unitpile/unitpile/pkg/pile"
)

// ErrNotFound is returned when a requested habit does not exist.
var ErrNotFound = errors.New("not found")

// Store persists habits and the units logged against them.
type Store interface {
	// CreateHabit stores a new habit.
	CreateHabit(ctx context.Context, h pile.Habit) error

	// GetHabit returns the habit with the given ID, or ErrNotFound.
	GetHabit(ctx context.Context, id string) (pile.Habit, error)

	// ListHabits returns all habits ordered by creation time.
	ListHabits(ctx context.Context) ([]pile.Habit, error)

	// DeleteHabit removes a habit and all of its units, or ErrNotFound.
	DeleteHabit(ctx context.Context, id string) error

	// AppendUnit stores one logged unit. The referenced habit must exist.
	AppendUnit(ctx context.Context, u pile.Unit) error

	// ListUnits returns units in log order. An empty habitID selects all
	// habits; a limit of 0 means no limit.
	ListUnits(ctx context.Context, habitID string, limit int) ([]pile.Unit, error)

	// CountUnits returns the number of units logged against habitID, or
	// against all habits when habitID is empty.
	CountUnits(ctx context.Context, habitID string) (int64, error)

	// Close releases store resources.
	Close(ctx context.Context) error
}

// HabitIndex builds an ID-keyed map for the pile.Items adapter.
func HabitIndex(habits []pile.Habit) map[string]pile.Habit {
	idx := make(map[string]pile.Habit, len(habits))
	for _, h := range habits {
		idx[h.ID] = h
	}
	return idx
}
