package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/unitpile/unitpile/pkg/observability"
	"github.com/unitpile/unitpile/pkg/pile"
	"github.com/unitpile/unitpile/pkg/store"
	"github.com/unitpile/unitpile/pkg/store/memory"
)

// recordingStoreHooks captures query events for assertions.
type recordingStoreHooks struct {
	mu        sync.Mutex
	started   []string
	completed []string
	errs      []error
}

func (h *recordingStoreHooks) OnQuery(_ context.Context, op string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = append(h.started, op)
}

func (h *recordingStoreHooks) OnQueryComplete(_ context.Context, op string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = append(h.completed, op)
	h.errs = append(h.errs, err)
}

func TestInstrumentEmitsQueryHooks(t *testing.T) {
	hooks := &recordingStoreHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s := store.Instrument(memory.New())

	h, err := pile.NewHabit("water", "#4ade80", false, 0)
	if err != nil {
		t.Fatalf("NewHabit() error = %v", err)
	}
	if err := s.CreateHabit(ctx, h); err != nil {
		t.Fatalf("CreateHabit() error = %v", err)
	}
	if _, err := s.GetHabit(ctx, h.ID); err != nil {
		t.Fatalf("GetHabit() error = %v", err)
	}
	if err := s.AppendUnit(ctx, pile.NewUnit(h.ID)); err != nil {
		t.Fatalf("AppendUnit() error = %v", err)
	}
	if _, err := s.CountUnits(ctx, h.ID); err != nil {
		t.Fatalf("CountUnits() error = %v", err)
	}

	want := []string{"CreateHabit", "GetHabit", "AppendUnit", "CountUnits"}
	if len(hooks.started) != len(want) {
		t.Fatalf("OnQuery calls = %v, want %v", hooks.started, want)
	}
	for i, op := range want {
		if hooks.started[i] != op {
			t.Errorf("OnQuery[%d] = %q, want %q", i, hooks.started[i], op)
		}
		if hooks.completed[i] != op {
			t.Errorf("OnQueryComplete[%d] = %q, want %q", i, hooks.completed[i], op)
		}
		if hooks.errs[i] != nil {
			t.Errorf("OnQueryComplete[%d] err = %v, want nil", i, hooks.errs[i])
		}
	}
}

func TestInstrumentReportsErrors(t *testing.T) {
	hooks := &recordingStoreHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s := store.Instrument(memory.New())

	_, err := s.GetHabit(ctx, "no-such-habit")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetHabit() error = %v, want ErrNotFound", err)
	}

	if len(hooks.completed) != 1 || hooks.completed[0] != "GetHabit" {
		t.Fatalf("OnQueryComplete calls = %v, want [GetHabit]", hooks.completed)
	}
	if !errors.Is(hooks.errs[0], store.ErrNotFound) {
		t.Errorf("OnQueryComplete err = %v, want ErrNotFound", hooks.errs[0])
	}
}

func TestInstrumentPreservesResults(t *testing.T) {
	observability.Reset()

	ctx := context.Background()
	s := store.Instrument(memory.New())

	h, err := pile.NewHabit("reading", "", false, 1)
	if err != nil {
		t.Fatalf("NewHabit() error = %v", err)
	}
	if err := s.CreateHabit(ctx, h); err != nil {
		t.Fatalf("CreateHabit() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.AppendUnit(ctx, pile.NewUnit(h.ID)); err != nil {
			t.Fatalf("AppendUnit() error = %v", err)
		}
	}

	n, err := s.CountUnits(ctx, h.ID)
	if err != nil {
		t.Fatalf("CountUnits() error = %v", err)
	}
	if n != 3 {
		t.Errorf("CountUnits() = %d, want 3", n)
	}

	units, err := s.ListUnits(ctx, h.ID, 0)
	if err != nil {
		t.Fatalf("ListUnits() error = %v", err)
	}
	if len(units) != 3 {
		t.Errorf("ListUnits() returned %d units, want 3", len(units))
	}
}
