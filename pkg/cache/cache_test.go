package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("unexpected hit before Set")
	}

	// Round trip
	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || string(data) != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", data, hit)
	}

	// Delete
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("hit after Delete")
	}

	// Deleting a missing key is fine
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// LayoutKey should include every option in the hash
	lk1 := k.LayoutKey(LayoutKeyOpts{Count: 100, Width: 200, Height: 200})
	lk2 := k.LayoutKey(LayoutKeyOpts{Count: 101, Width: 200, Height: 200})
	lk3 := k.LayoutKey(LayoutKeyOpts{Count: 100, Width: 200, Height: 300})
	if lk1 == lk2 || lk1 == lk3 {
		t.Error("different LayoutKeyOpts should produce different keys")
	}

	// Identical options produce identical keys
	if lk1 != k.LayoutKey(LayoutKeyOpts{Count: 100, Width: 200, Height: 200}) {
		t.Error("LayoutKey should be deterministic")
	}

	// ArtifactKey varies with format and items hash
	ak1 := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "svg", Style: "flat"})
	ak2 := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "json", Style: "flat"})
	ak3 := k.ArtifactKey("hash2", ArtifactKeyOpts{Format: "svg", Style: "flat"})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("different artifact inputs should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "user:42:")

	opts := LayoutKeyOpts{Count: 10, Width: 100, Height: 100}
	want := "user:42:" + base.LayoutKey(opts)
	if got := scoped.LayoutKey(opts); got != want {
		t.Errorf("LayoutKey = %q, want %q", got, want)
	}

	// Nil inner falls back to the default keyer
	fallback := NewScopedKeyer(nil, "p:")
	if got := fallback.LayoutKey(opts); got != "p:"+base.LayoutKey(opts) {
		t.Errorf("nil inner LayoutKey = %q", got)
	}
}
