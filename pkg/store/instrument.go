package store

import (
	"context"
	"time"

	"github.com/unitpile/unitpile/pkg/observability"
	"github.com/unitpile/unitpile/pkg/pile"
)

// Instrument wraps a store so every call emits observability store hooks.
// The operation name passed to the hooks is the Store method name.
func Instrument(s Store) Store {
	return &instrumentedStore{next: s}
}

type instrumentedStore struct {
	next Store
}

// observe emits the query hooks around fn.
func observe(ctx context.Context, op string, fn func() error) error {
	observability.Store().OnQuery(ctx, op)
	start := time.Now()
	err := fn()
	observability.Store().OnQueryComplete(ctx, op, time.Since(start), err)
	return err
}

func (s *instrumentedStore) CreateHabit(ctx context.Context, h pile.Habit) error {
	return observe(ctx, "CreateHabit", func() error {
		return s.next.CreateHabit(ctx, h)
	})
}

func (s *instrumentedStore) GetHabit(ctx context.Context, id string) (pile.Habit, error) {
	var h pile.Habit
	err := observe(ctx, "GetHabit", func() error {
		var err error
		h, err = s.next.GetHabit(ctx, id)
		return err
	})
	return h, err
}

func (s *instrumentedStore) ListHabits(ctx context.Context) ([]pile.Habit, error) {
	var habits []pile.Habit
	err := observe(ctx, "ListHabits", func() error {
		var err error
		habits, err = s.next.ListHabits(ctx)
		return err
	})
	return habits, err
}

func (s *instrumentedStore) DeleteHabit(ctx context.Context, id string) error {
	return observe(ctx, "DeleteHabit", func() error {
		return s.next.DeleteHabit(ctx, id)
	})
}

func (s *instrumentedStore) AppendUnit(ctx context.Context, u pile.Unit) error {
	return observe(ctx, "AppendUnit", func() error {
		return s.next.AppendUnit(ctx, u)
	})
}

func (s *instrumentedStore) ListUnits(ctx context.Context, habitID string, limit int) ([]pile.Unit, error) {
	var units []pile.Unit
	err := observe(ctx, "ListUnits", func() error {
		var err error
		units, err = s.next.ListUnits(ctx, habitID, limit)
		return err
	})
	return units, err
}

func (s *instrumentedStore) CountUnits(ctx context.Context, habitID string) (int64, error) {
	var n int64
	err := observe(ctx, "CountUnits", func() error {
		var err error
		n, err = s.next.CountUnits(ctx, habitID)
		return err
	})
	return n, err
}

func (s *instrumentedStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}

var _ Store = (*instrumentedStore)(nil)
