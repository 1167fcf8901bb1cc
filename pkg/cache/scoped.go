package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Different users' piles share the same backend in the hosted setup, so
// their cache namespaces must not collide.
//
// Example usage:
//
//	// User-specific keys
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for anonymous layout requests
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(itemsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(itemsHash, opts)
}
