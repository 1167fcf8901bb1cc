package sink

import (
	"strings"
	"testing"

	"github.com/unitpile/unitpile/pkg/grid"
	"github.com/unitpile/unitpile/pkg/render/styles"
)

func testCells(t *testing.T, count int, w, h float64) (grid.Layout, []grid.Cell) {
	t.Helper()
	l := grid.Solve(count, w, h)
	items := make([]grid.Item, count)
	for i := range items {
		items[i] = grid.Item{Color: "#4ade80"}
	}
	return l, grid.Place(items, l)
}

func TestRenderSVG(t *testing.T) {
	l, cells := testCells(t, 9, 300, 300)
	out := string(RenderSVG(l, cells))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("output should start with svg element, got %q", out[:60])
	}
	if got := strings.Count(out, `class="cell"`); got != 9 {
		t.Errorf("cell count = %d, want 9", got)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output should end with closing svg tag")
	}
}

func TestRenderSVGEmptyGrid(t *testing.T) {
	out := string(RenderSVG(grid.Layout{}, nil))

	// Degenerate input still yields a valid 1x1 document.
	if !strings.Contains(out, `viewBox="0 0 1.0 1.0"`) {
		t.Errorf("empty grid viewBox missing, got %q", out)
	}
	if strings.Contains(out, `class="cell"`) {
		t.Error("empty grid should render no cells")
	}
}

func TestRenderSVGWithBackground(t *testing.T) {
	l, cells := testCells(t, 1, 100, 100)
	out := string(RenderSVG(l, cells, WithBackground("#ffffff")))

	if !strings.Contains(out, `class="background"`) {
		t.Error("background rect missing")
	}
	if !strings.Contains(out, `fill="#ffffff"`) {
		t.Error("background color missing")
	}
}

func TestRenderSVGWithOverflow(t *testing.T) {
	l, cells := testCells(t, 4, 200, 200)

	out := string(RenderSVG(l, cells, WithOverflow(5000)))
	if !strings.Contains(out, "+5,000") {
		t.Error("overflow badge text missing")
	}
	if !strings.Contains(out, `class="badge"`) {
		t.Error("overflow badge box missing")
	}

	// Badge strip extends the viewBox below the grid.
	plain := string(RenderSVG(l, cells))
	if len(out) <= len(plain) {
		t.Error("badge output should be larger than plain output")
	}

	none := string(RenderSVG(l, cells, WithOverflow(0)))
	if strings.Contains(none, "badge-text") {
		t.Error("zero overflow should render no badge")
	}
}

func TestRenderSVGWithStyle(t *testing.T) {
	l, cells := testCells(t, 4, 200, 200)
	out := string(RenderSVG(l, cells, WithStyle(styles.Rounded{})))

	if !strings.Contains(out, "<defs>") {
		t.Error("rounded style should emit defs")
	}
	if !strings.Contains(out, `rx="`) {
		t.Error("rounded style should emit rounded corners")
	}
}
