package grid

import (
	"fmt"
	"testing"
)

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: fmt.Sprintf("item-%d", i), Color: "#4ade80"}
	}
	return items
}

func TestPlaceRowMajor(t *testing.T) {
	l := Layout{Columns: 3, Rows: 2, CellSize: 10, Gap: 2, TotalWidth: 34, TotalHeight: 22}
	cells := Place(makeItems(5), l)

	if len(cells) != 5 {
		t.Fatalf("got %d cells, want 5", len(cells))
	}

	want := []struct {
		row, col int
		x, y     float64
	}{
		{0, 0, 0, 0},
		{0, 1, 12, 0},
		{0, 2, 24, 0},
		{1, 0, 0, 12},
		{1, 1, 12, 12},
	}
	for i, w := range want {
		c := cells[i]
		if c.Row != w.row || c.Col != w.col {
			t.Errorf("cell %d at row %d col %d, want row %d col %d", i, c.Row, c.Col, w.row, w.col)
		}
		if c.X != w.x || c.Y != w.y {
			t.Errorf("cell %d at (%v, %v), want (%v, %v)", i, c.X, c.Y, w.x, w.y)
		}
		if c.Item.ID != fmt.Sprintf("item-%d", i) {
			t.Errorf("cell %d holds %q, want input order preserved", i, c.Item.ID)
		}
	}
}

func TestPlaceZeroLayout(t *testing.T) {
	if cells := Place(makeItems(10), Layout{}); cells != nil {
		t.Errorf("zero layout produced %d cells, want none", len(cells))
	}
}

func TestPlaceNoItems(t *testing.T) {
	l := Layout{Columns: 4, Rows: 4, CellSize: 5}
	if cells := Place(nil, l); len(cells) != 0 {
		t.Errorf("got %d cells for empty input", len(cells))
	}
}

func TestPlaceBoundsToCapacity(t *testing.T) {
	l := Layout{Columns: 2, Rows: 2, CellSize: 5}
	cells := Place(makeItems(10), l)
	if len(cells) != 4 {
		t.Errorf("got %d cells, want 4 (grid capacity)", len(cells))
	}
}

func TestSplitVisible(t *testing.T) {
	tests := []struct {
		name         string
		items        int
		limit        int
		wantVisible  int
		wantOverflow int
	}{
		{name: "under limit", items: 10, limit: 100, wantVisible: 10, wantOverflow: 0},
		{name: "at limit", items: 100, limit: 100, wantVisible: 100, wantOverflow: 0},
		{name: "over limit", items: 20000, limit: 15000, wantVisible: 15000, wantOverflow: 5000},
		{name: "no limit", items: 50, limit: 0, wantVisible: 50, wantOverflow: 0},
		{name: "empty", items: 0, limit: 10, wantVisible: 0, wantOverflow: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible, overflow := SplitVisible(makeItems(tt.items), tt.limit)
			if len(visible) != tt.wantVisible {
				t.Errorf("visible = %d, want %d", len(visible), tt.wantVisible)
			}
			if overflow != tt.wantOverflow {
				t.Errorf("overflow = %d, want %d", overflow, tt.wantOverflow)
			}
		})
	}
}

func TestSolveThenPlace(t *testing.T) {
	items := makeItems(100)
	l := Solve(len(items), 200, 200)
	cells := Place(items, l)

	if len(cells) != 100 {
		t.Fatalf("placed %d cells, want 100", len(cells))
	}
	last := cells[99]
	if last.X+float64(l.CellSize) > 200 || last.Y+float64(l.CellSize) > 200 {
		t.Errorf("last cell at (%v, %v) with size %d escapes the 200x200 frame", last.X, last.Y, l.CellSize)
	}
}
