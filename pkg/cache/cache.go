// Package cache provides pluggable caching for computed layouts and rendered
// artifacts.
//
// The grid solver is cheap, but rendered artifacts (large SVGs, PNG
// conversion through librsvg) are not, and the HTTP service recomputes them
// for every pile view. Cache keys are derived from the full set of inputs
// that affect the output, so a hit is always safe to serve.
//
// Three backends are provided:
//   - FileCache: sharded JSON files under a directory, for CLI usage
//   - RedisCache: shared cache for multi-instance serving
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Layouts are pure functions of their key and could
// live forever; the short-ish TTLs just bound disk usage.
const (
	// TTLLayout is the time-to-live for computed grid layouts.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the time-to-live for rendered artifacts.
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves the value for key. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures every input that affects a solved layout.
type LayoutKeyOpts struct {
	Count  int
	Width  float64
	Height float64
}

// ArtifactKeyOpts captures every rendering option that affects an artifact.
type ArtifactKeyOpts struct {
	Format     string
	Style      string
	Badge      bool
	Background string
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a solved layout.
	LayoutKey(opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact. itemsHash is the
	// content hash of the placed item list (colors and flags change pixels).
	ArtifactKey(itemsHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options into prefixed sha256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a solved layout.
func (k *DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(itemsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", itemsHash, opts)
}
