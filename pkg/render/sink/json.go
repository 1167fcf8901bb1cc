package sink

import (
	"encoding/json"

	"github.com/unitpile/unitpile/pkg/grid"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style    string
	overflow int
}

// WithJSONStyle records the style name (e.g., "flat", "rounded") in the JSON
// output for documentation or round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONOverflow records how many items were hidden beyond the visible cap.
func WithJSONOverflow(n int) JSONOption { return func(r *jsonRenderer) { r.overflow = n } }

type jsonOutput struct {
	Layout   grid.Layout `json:"layout"`
	Style    string      `json:"style,omitempty"`
	Overflow int         `json:"overflow,omitempty"`
	Badge    string      `json:"badge,omitempty"`
	Cells    []jsonCell  `json:"cells"`
}

type jsonCell struct {
	Row         int     `json:"row"`
	Col         int     `json:"col"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	ID          string  `json:"id,omitempty"`
	Color       string  `json:"color"`
	Highlighted bool    `json:"highlighted,omitempty"`
}

// RenderJSON exports the layout and placed cells as a pretty-printed JSON
// document. This is the primary data interchange format, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
//
// RenderJSON returns an error only if JSON marshaling fails (should not
// happen with well-formed layouts). It does not modify its inputs and is safe
// to call concurrently.
func RenderJSON(l grid.Layout, cells []grid.Cell, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Layout:   l,
		Style:    r.style,
		Overflow: r.overflow,
		Badge:    grid.OverflowBadge(r.overflow),
		Cells:    buildJSONCells(cells),
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONCells(cells []grid.Cell) []jsonCell {
	out := make([]jsonCell, len(cells))
	for i, c := range cells {
		out[i] = jsonCell{
			Row:         c.Row,
			Col:         c.Col,
			X:           c.X,
			Y:           c.Y,
			ID:          c.Item.ID,
			Color:       c.Item.Color,
			Highlighted: c.Item.Highlighted,
		}
	}
	return out
}
