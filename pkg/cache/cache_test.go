package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/deptower/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNull()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Null.Get should always return miss")
	}
	if data != nil {
		t.Error("Null.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("Null cache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "resolution:abc", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "resolution:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || !bytes.Equal(data, []byte("payload")) {
		t.Errorf("Get = %q, %v; want payload, true", data, hit)
	}

	if err := c.Delete(ctx, "resolution:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "resolution:abc"); hit {
		t.Error("entry survived Delete")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	// Negative ttl means no expiration
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("non-positive ttl should mean no expiration")
	}

	if err := c.Set(ctx, "key", []byte("stale"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("ok"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("key"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("Get on corrupt entry = hit=%v, err=%v; want miss, nil", hit, err)
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCache_ShardsByHash(t *testing.T) {
	c, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	path := c.path("some-key")
	shard := filepath.Base(filepath.Dir(path))
	if len(shard) != 2 {
		t.Errorf("shard dir = %q, want two hash characters", shard)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemory(8)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v, %v; want value, true, nil", data, hit, err)
	}

	if err := c.Set(ctx, "brief", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "brief"); hit {
		t.Error("expired entry should be a miss")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry survived Delete")
	}
}

func TestMemoryCache_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemory(2)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("oldest entry should be evicted at capacity")
	}
	if _, hit, _ := c.Get(ctx, "c"); !hit {
		t.Error("newest entry should survive")
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

func TestResolutionKey(t *testing.T) {
	k1 := ResolutionKey([]byte(`{"packages":[]}`))
	k2 := ResolutionKey([]byte(`{"packages":[ ]}`))
	if k1 == k2 {
		t.Error("different manifest bytes should produce different keys")
	}
	if keyType(k1) != "resolution" {
		t.Errorf("key namespace = %q, want resolution", keyType(k1))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, "none")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*Null); !ok {
		t.Errorf("Open(none) = %T, want *Null", c)
	}

	c, err = Open(ctx, "memory")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*Memory); !ok {
		t.Errorf("Open(memory) = %T, want *Memory", c)
	}

	dir := filepath.Join(t.TempDir(), "cache")
	c, err = Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*File); !ok {
		t.Errorf("Open(dir) = %T, want *File", c)
	}

	if _, err := Open(ctx, "ftp://example.com"); err == nil {
		t.Error("Open should reject unknown schemes")
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestInstrumentedCache_ReportsHooks(t *testing.T) {
	ctx := context.Background()
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	mem, err := NewMemory(8)
	if err != nil {
		t.Fatal(err)
	}
	c := Instrument(mem)
	defer c.Close()

	_, _, _ = c.Get(ctx, "resolution:missing")
	_ = c.Set(ctx, "resolution:k", []byte("v"), 0)
	_, _, _ = c.Get(ctx, "resolution:k")

	if hooks.misses != 1 || hooks.sets != 1 || hooks.hits != 1 {
		t.Errorf("hooks = %d hits, %d misses, %d sets; want 1 each",
			hooks.hits, hooks.misses, hooks.sets)
	}
}
