package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopResolverHooks{}
	r.OnResolveStart(ctx, 12)
	r.OnResolveComplete(ctx, 12, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "resolution")
	c.OnCacheMiss(ctx, "resolution")
	c.OnCacheSet(ctx, "resolution", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Resolver().(NoopResolverHooks); !ok {
		t.Error("Resolver() should return NoopResolverHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customResolver := &testResolverHooks{}
	SetResolverHooks(customResolver)
	if Resolver() != customResolver {
		t.Error("SetResolverHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Resolver().(NoopResolverHooks); !ok {
		t.Error("Reset() should restore NoopResolverHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testResolverHooks{}
	SetResolverHooks(custom)

	// Setting nil should be ignored
	SetResolverHooks(nil)

	if Resolver() != custom {
		t.Error("SetResolverHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testResolverHooks struct{ NoopResolverHooks }
type testCacheHooks struct{ NoopCacheHooks }
