package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestFlatRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Flat{}.RenderDefs(&buf)

	// Flat style has no defs
	if buf.Len() != 0 {
		t.Errorf("RenderDefs() wrote %d bytes, want 0", buf.Len())
	}
}

func TestFlatRenderCell(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		contains []string
		excludes []string
	}{
		{
			name: "basic cell",
			cell: Cell{X: 10, Y: 20, Size: 8, Color: "#4ade80"},
			contains: []string{
				`<rect`,
				`class="cell"`,
				`x="10.00"`,
				`y="20.00"`,
				`width="8.00"`,
				`height="8.00"`,
				`fill="#4ade80"`,
			},
			excludes: []string{`stroke=`},
		},
		{
			name: "highlighted cell",
			cell: Cell{X: 0, Y: 0, Size: 5, Color: "#60a5fa", Highlighted: true},
			contains: []string{
				`stroke="` + highlightStroke + `"`,
			},
		},
		{
			name: "color with special chars is escaped",
			cell: Cell{X: 0, Y: 0, Size: 5, Color: `"><script>`},
			contains: []string{
				`&#34;&gt;&lt;script&gt;`,
			},
			excludes: []string{`"><script>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Flat{}.RenderCell(&buf, tt.cell)
			output := buf.String()

			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("RenderCell() output missing %q\nGot: %s", want, output)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(output, bad) {
					t.Errorf("RenderCell() output contains %q\nGot: %s", bad, output)
				}
			}
		})
	}
}

func TestRoundedRenderCell(t *testing.T) {
	var buf bytes.Buffer
	Rounded{}.RenderCell(&buf, Cell{X: 0, Y: 0, Size: 10, Color: "#fbbf24"})
	output := buf.String()

	for _, want := range []string{`rx="2.00"`, `filter="url(#cell-shadow)"`} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderCell() output missing %q\nGot: %s", want, output)
		}
	}

	buf.Reset()
	Rounded{}.RenderDefs(&buf)
	if !strings.Contains(buf.String(), `id="cell-shadow"`) {
		t.Error("RenderDefs() missing shadow filter")
	}
}

func TestRenderBadge(t *testing.T) {
	var buf bytes.Buffer
	Flat{}.RenderBadge(&buf, Badge{X: 100, Y: 200, W: 60, H: 16, Text: "+5,000"})
	output := buf.String()

	for _, want := range []string{`class="badge"`, `class="badge-text"`, `+5,000`, `text-anchor="middle"`} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderBadge() output missing %q\nGot: %s", want, output)
		}
	}

	// Empty text renders nothing
	buf.Reset()
	Flat{}.RenderBadge(&buf, Badge{W: 60, H: 16})
	if buf.Len() != 0 {
		t.Errorf("empty badge wrote %d bytes, want 0", buf.Len())
	}
}

func TestByName(t *testing.T) {
	if _, ok := ByName(NameRounded).(Rounded); !ok {
		t.Error("ByName(rounded) did not return Rounded")
	}
	if _, ok := ByName(NameFlat).(Flat); !ok {
		t.Error("ByName(flat) did not return Flat")
	}
	if _, ok := ByName("bogus").(Flat); !ok {
		t.Error("ByName(bogus) should default to Flat")
	}
}
