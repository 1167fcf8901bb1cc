// Package sink turns solved layouts and placed cells into output artifacts.
//
// Each sink is a pure function over (layout, cells) plus functional options;
// none of them mutate their inputs, so they are safe to call concurrently.
package sink

import (
	"bytes"
	"fmt"

	"github.com/unitpile/unitpile/pkg/grid"
	"github.com/unitpile/unitpile/pkg/render/styles"
)

// Badge box geometry, in layout units.
const (
	badgeHeight  = 16.0
	badgeCharW   = 7.0
	badgePadding = 8.0
	badgeGap     = 6.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	background string
	overflow   int
}

// WithStyle sets the visual style (default flat).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithBackground fills the frame with a background color before drawing cells.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithOverflow sets the truncated-item count rendered as a "+N" badge below
// the grid. Zero or negative counts render no badge.
func WithOverflow(count int) SVGOption { return func(r *svgRenderer) { r.overflow = count } }

// RenderSVG renders placed cells as a standalone SVG document. The viewBox
// covers the grid's total extent plus, when an overflow badge is shown, a
// strip below the grid for the badge.
func RenderSVG(l grid.Layout, cells []grid.Cell, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Flat{}}
	for _, opt := range opts {
		opt(&r)
	}

	badgeText := grid.OverflowBadge(r.overflow)
	width, height := l.TotalWidth, l.TotalHeight
	if badgeText != "" {
		height += badgeGap + badgeHeight
	}
	// Even an empty grid produces a valid document.
	width, height = max(width, 1), max(height, 1)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	r.style.RenderDefs(&buf)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", styles.EscapeXML(r.background))
	}

	for _, c := range cells {
		r.style.RenderCell(&buf, styles.Cell{
			X:           c.X,
			Y:           c.Y,
			Size:        float64(l.CellSize),
			Color:       c.Item.Color,
			Highlighted: c.Item.Highlighted,
		})
	}

	if badgeText != "" {
		w := badgePadding*2 + badgeCharW*float64(len(badgeText))
		r.style.RenderBadge(&buf, styles.Badge{
			X:    max(0, l.TotalWidth-w),
			Y:    l.TotalHeight + badgeGap,
			W:    w,
			H:    badgeHeight,
			Text: badgeText,
		})
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
