package grid

// MaxVisibleItems is the default cap on individually rendered cells. Items
// beyond the cap are summarized by the overflow badge instead of drawn.
const MaxVisibleItems = 15000

// Item is one unit of visual content to be placed in the grid. Color is
// display-only and opaque to this package; Highlighted marks the variant
// cell treatment.
type Item struct {
	ID          string `json:"id"`
	Color       string `json:"color"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// Cell is one placed grid slot. X and Y are the top-left corner offsets from
// the grid origin, in the same units as the frame passed to [Solve].
type Cell struct {
	Row  int     `json:"row"`
	Col  int     `json:"col"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Item Item    `json:"item"`
}

// Place maps items onto the layout in row-major order: the first item lands
// at row 0, column 0, filling columns before advancing rows. Items beyond
// Columns*Rows are ignored. A zero layout yields no cells.
//
// The caller is expected to have bounded the item list already (see
// [SplitVisible]); Place itself applies no truncation policy.
func Place(items []Item, l Layout) []Cell {
	if l.IsZero() || l.Columns < 1 {
		return nil
	}

	capacity := l.Columns * l.Rows
	n := min(len(items), capacity)
	pitch := float64(l.CellSize + l.Gap)

	cells := make([]Cell, n)
	for i := 0; i < n; i++ {
		row, col := i/l.Columns, i%l.Columns
		cells[i] = Cell{
			Row:  row,
			Col:  col,
			X:    float64(col) * pitch,
			Y:    float64(row) * pitch,
			Item: items[i],
		}
	}
	return cells
}

// SplitVisible bounds items to at most limit entries and returns the count
// that was cut off. A limit <= 0 means no bound. The visible slice aliases
// the input; callers must not mutate it while the original is in use.
func SplitVisible(items []Item, limit int) (visible []Item, overflow int) {
	if limit <= 0 || len(items) <= limit {
		return items, 0
	}
	return items[:limit], len(items) - limit
}
