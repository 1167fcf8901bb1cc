package grid

import "math"

// Packing bounds, in layout units.
const (
	// MinCell is the smallest cell edge the solver will produce.
	MinCell = 1

	// MaxCell caps the cell edge so a handful of items doesn't fill the frame
	// with oversized cells.
	MaxCell = 50
)

// gapTiers lists cell spacings in descending preference order. Wider spacing
// is tried first; the first tier with any feasible cell size wins, even if a
// narrower tier would allow a larger cell. This trades density for breathing
// room between cells.
var gapTiers = [...]int{2, 1, 0}

// Layout describes a uniform square grid packed into a rectangular frame.
// TotalWidth and TotalHeight follow from the other fields:
//
//	TotalWidth  = Columns*CellSize + max(0, Columns-1)*Gap
//	TotalHeight = Rows*CellSize + max(0, Rows-1)*Gap
//
// Both stay within the frame passed to [Solve] unless the proportional
// fallback was taken. A zero CellSize means there is nothing to render.
type Layout struct {
	Columns     int     `json:"columns"`
	Rows        int     `json:"rows"`
	CellSize    int     `json:"cell_size"`
	Gap         int     `json:"gap"`
	TotalWidth  float64 `json:"total_width"`
	TotalHeight float64 `json:"total_height"`
}

// IsZero reports whether the layout holds no renderable cells.
func (l Layout) IsZero() bool { return l.CellSize == 0 }

// Solve computes the grid that fits totalItems cells into the given frame,
// maximizing cell size under the constraint Columns*Rows >= totalItems with
// the grid staying inside the frame.
//
// Gap tiers are tried widest first; within a tier the cell size is found by
// binary search over [MinCell, min(MaxCell, floor(width), floor(height))].
// If no tier admits any cell size, a proportional packing is returned that
// may overflow the frame but is never empty.
//
// A zero item count or a non-positive frame dimension yields the zero Layout.
func Solve(totalItems int, availableWidth, availableHeight float64) Layout {
	if totalItems <= 0 || availableWidth <= 0 || availableHeight <= 0 {
		return Layout{}
	}

	upper := min(MaxCell, int(math.Floor(min(availableWidth, availableHeight))))
	for _, gap := range gapTiers {
		if l, ok := solveForGap(totalItems, availableWidth, availableHeight, gap, upper); ok {
			return l
		}
	}
	return solveProportional(totalItems, availableWidth, availableHeight)
}

// solveForGap binary-searches the largest feasible cell size for a fixed gap.
// Feasibility is monotone in the cell size: a smaller cell never fits worse,
// so the search keeps the largest size that fits and reports false when even
// MinCell does not.
func solveForGap(totalItems int, availableWidth, availableHeight float64, gap, upper int) (Layout, bool) {
	var best Layout
	found := false

	lo, hi := MinCell, upper
	for lo <= hi {
		size := (lo + hi) / 2
		if l, ok := fit(totalItems, availableWidth, availableHeight, size, gap); ok {
			best, found = l, true
			lo = size + 1
		} else {
			hi = size - 1
		}
	}
	return best, found
}

// fit builds the layout for a candidate cell size and reports whether it
// stays inside the frame. Columns are packed greedily along the width; rows
// follow from the item count.
func fit(totalItems int, availableWidth, availableHeight float64, size, gap int) (Layout, bool) {
	columns := int((availableWidth + float64(gap)) / float64(size+gap))
	if columns < 1 {
		columns = 1
	}
	rows := ceilDiv(totalItems, columns)

	l := Layout{
		Columns:     columns,
		Rows:        rows,
		CellSize:    size,
		Gap:         gap,
		TotalWidth:  span(columns, size, gap),
		TotalHeight: span(rows, size, gap),
	}
	if l.TotalWidth > availableWidth || l.TotalHeight > availableHeight {
		return Layout{}, false
	}
	return l, true
}

// solveProportional packs items into a grid whose column count follows the
// frame's aspect ratio. Used only when no gap tier fits; the result may
// overflow the frame but always has at least MinCell-sized cells.
func solveProportional(totalItems int, availableWidth, availableHeight float64) Layout {
	aspect := availableWidth / availableHeight
	columns := int(math.Ceil(math.Sqrt(float64(totalItems) * aspect)))
	if columns < 1 {
		columns = 1
	}
	rows := ceilDiv(totalItems, columns)

	size := int(math.Floor(min(availableWidth/float64(columns), availableHeight/float64(rows))))
	if size < MinCell {
		size = MinCell
	}

	return Layout{
		Columns:     columns,
		Rows:        rows,
		CellSize:    size,
		Gap:         0,
		TotalWidth:  span(columns, size, 0),
		TotalHeight: span(rows, size, 0),
	}
}

// span returns the extent of count cells of the given size separated by gap.
func span(count, size, gap int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(count*size + (count-1)*gap)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
