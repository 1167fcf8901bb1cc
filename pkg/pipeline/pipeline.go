// Package pipeline provides the core visualization pipeline for unitpile.
//
// This package implements the complete solve → place → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Solve: Compute the largest uniform grid that fits the frame
//  2. Place: Assign visible items to grid cells in row-major order
//  3. Render: Generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Count:   365,
//	    Width:   800,
//	    Height:  600,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.ExecuteCount(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/unitpile/unitpile/pkg/cache"
	"github.com/unitpile/unitpile/pkg/grid"
	"github.com/unitpile/unitpile/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = styles.NameFlat

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	styles.NameFlat:    true,
	styles.NameRounded: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Item options (used by ExecuteCount when no item list is supplied)
	Count int    `json:"count"`
	Color string `json:"color,omitempty"`

	// Layout options
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	MaxVisible int     `json:"max_visible,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	HideBadge  bool     `json:"hide_badge,omitempty"`
	Background string   `json:"background,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the solved grid geometry.
	Layout grid.Layout

	// Cells are the placed visible items.
	Cells []grid.Cell

	// Overflow is the number of items hidden beyond the visible cap.
	Overflow int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount    int
	VisibleCount int
	SolveTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return fmt.Errorf("invalid style: %q (must be one of: flat, rounded)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSolve checks required fields for the solve stage.
func (o *Options) ValidateForSolve() error {
	if o.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", o.Count)
	}
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("frame dimensions must be non-negative, got %gx%g", o.Width, o.Height)
	}
	o.SetLayoutDefaults()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxVisible == 0 {
		o.MaxVisible = grid.MaxVisibleItems
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// VisibleCount returns how many of n items will be placed given the
// configured visible cap.
func (o *Options) VisibleCount(n int) int {
	if o.MaxVisible > 0 && n > o.MaxVisible {
		return o.MaxVisible
	}
	return n
}

// LayoutKeyOpts returns cache key options for the solve stage.
// The key is derived from the visible count, not the raw total: two piles
// that truncate to the same visible count solve identically.
func (o *Options) LayoutKeyOpts(visibleCount int) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Count:  visibleCount,
		Width:  o.Width,
		Height: o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		Badge:      !o.HideBadge,
		Background: o.Background,
	}
}
