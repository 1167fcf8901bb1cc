package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// highlightStroke outlines highlighted cells in all styles.
const highlightStroke = "#1f2937"

// Flat draws plain square cells with no decoration. It is the default style
// and the cheapest to render for very large piles.
type Flat struct{}

// RenderDefs writes nothing; the flat style has no defs.
func (Flat) RenderDefs(buf *bytes.Buffer) {}

// RenderCell writes a plain filled rect.
func (Flat) RenderCell(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `  <rect class="cell" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`,
		c.X, c.Y, c.Size, c.Size, EscapeXML(c.Color))
	if c.Highlighted {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="1.5"`, highlightStroke)
	}
	buf.WriteString("/>\n")
}

// RenderBadge writes a pill-shaped badge with centered text.
func (Flat) RenderBadge(buf *bytes.Buffer, b Badge) {
	renderBadgeBox(buf, b, b.H/4)
}

// Rounded draws cells with rounded corners and a soft drop shadow, matching
// the mobile app's pile treatment.
type Rounded struct{}

// RenderDefs writes the shadow filter shared by all rounded cells.
func (Rounded) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="cell-shadow" x="-20%" y="-20%" width="140%" height="140%">
      <feDropShadow dx="0" dy="0.5" stdDeviation="0.5" flood-opacity="0.25"/>
    </filter>
  </defs>
`)
}

// RenderCell writes a rounded rect with the shared shadow filter.
func (Rounded) RenderCell(buf *bytes.Buffer, c Cell) {
	radius := c.Size * 0.2
	fmt.Fprintf(buf, `  <rect class="cell" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s" filter="url(#cell-shadow)"`,
		c.X, c.Y, c.Size, c.Size, radius, EscapeXML(c.Color))
	if c.Highlighted {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="1.5"`, highlightStroke)
	}
	buf.WriteString("/>\n")
}

// RenderBadge writes a fully rounded pill badge.
func (Rounded) RenderBadge(buf *bytes.Buffer, b Badge) {
	renderBadgeBox(buf, b, b.H/2)
}

// renderBadgeBox draws the shared badge box and centered text.
func renderBadgeBox(buf *bytes.Buffer, b Badge, radius float64) {
	if b.Text == "" {
		return
	}
	fmt.Fprintf(buf, `  <rect class="badge" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="#111827" fill-opacity="0.85"/>`+"\n",
		b.X, b.Y, b.W, b.H, radius)
	fmt.Fprintf(buf, `  <text class="badge-text" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%.1f" fill="white">%s</text>`+"\n",
		b.X+b.W/2, b.Y+b.H/2, b.H*0.55, EscapeXML(b.Text))
}

// EscapeXML escapes text for safe embedding in SVG attributes and content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
