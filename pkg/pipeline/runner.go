package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/unitpile/unitpile/pkg/cache"
	"github.com/unitpile/unitpile/pkg/grid"
	"github.com/unitpile/unitpile/pkg/observability"
	"github.com/unitpile/unitpile/pkg/pile"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ExecuteCount runs the full pipeline for a uniform pile of opts.Count items.
func (r *Runner) ExecuteCount(ctx context.Context, opts Options) (*Result, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("count must be non-negative, got %d", opts.Count)
	}
	return r.Execute(ctx, pile.CountItems(opts.Count, opts.Color), opts)
}

// Execute runs the complete solve → place → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, items []grid.Item, opts Options) (*Result, error) {
	opts.Count = len(items)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	visible, overflow := grid.SplitVisible(items, opts.MaxVisible)

	result := &Result{
		Overflow:  overflow,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.ItemCount = len(items)
	result.Stats.VisibleCount = len(visible)

	// Stage 1: Solve
	solveStart := time.Now()
	l, solveHit, err := r.SolveWithCacheInfo(ctx, len(visible), opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Layout = l
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved layout",
		"columns", l.Columns,
		"rows", l.Rows,
		"cell_size", l.CellSize,
		"gap", l.Gap,
		"duration", result.Stats.SolveTime)

	// Stage 2: Place (cheap, never cached)
	result.Cells = grid.Place(visible, l)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, result.Cells, overflow, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"overflow", overflow,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo solves the grid layout with caching and returns cache
// hit info. visibleCount is the number of items that will actually be placed.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, visibleCount int, opts Options) (grid.Layout, bool, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return grid.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(opts.LayoutKeyOpts(visibleCount))

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached grid.Layout
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Pipeline().OnSolveStart(ctx, visibleCount, opts.Width, opts.Height)
	l := grid.Solve(visibleCount, opts.Width, opts.Height)
	observability.Pipeline().OnSolveComplete(ctx, visibleCount, time.Since(start), nil)

	// Cache the result
	if data, err := json.Marshal(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil // Cache miss
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Solve(ctx context.Context, visibleCount int, opts Options) (grid.Layout, error) {
	l, _, err := r.SolveWithCacheInfo(ctx, visibleCount, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l grid.Layout, cells []grid.Cell, overflow int, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// The placed cells capture both the layout geometry and every visible
	// item's color and flags, so their hash keys the artifact cache.
	cellData, err := json.Marshal(struct {
		Layout   grid.Layout `json:"layout"`
		Cells    []grid.Cell `json:"cells"`
		Overflow int         `json:"overflow"`
	}{l, cells, overflow})
	if err != nil {
		return nil, false, fmt.Errorf("serialize cells for cache key: %w", err)
	}
	cellsHash := cache.Hash(cellData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(cellsHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(l, cells, overflow, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(cellsHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
