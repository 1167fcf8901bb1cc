// Package styles defines the visual treatments for grid rendering.
package styles

import "bytes"

// Style names accepted by the pipeline and CLI.
const (
	NameFlat    = "flat"
	NameRounded = "rounded"
)

// Style defines the visual appearance for grid rendering.
// Implementations control how cells and the overflow badge are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderCell writes the SVG for a single grid cell.
	RenderCell(buf *bytes.Buffer, c Cell)
	// RenderBadge writes the SVG for the overflow badge.
	RenderBadge(buf *bytes.Buffer, b Badge)
}

// Cell contains all data needed to render a single grid cell.
type Cell struct {
	X, Y        float64 // Top-left corner
	Size        float64 // Edge length
	Color       string  // Fill color
	Highlighted bool    // Whether to apply the highlight treatment
}

// Badge contains positioning data for the overflow badge.
type Badge struct {
	X, Y float64 // Top-left corner of the badge box
	W, H float64 // Badge box dimensions
	Text string  // Formatted "+N" text
}

// ByName returns the style for a pipeline style name,
// defaulting to Flat for unknown names.
func ByName(name string) Style {
	if name == NameRounded {
		return Rounded{}
	}
	return Flat{}
}
