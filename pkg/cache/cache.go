// Package cache stores resolution results keyed by manifest content.
//
// Resolving a large manifest is cheap but not free, and CI pipelines tend
// to resolve the same manifest many times between edits. The cache keys on
// a hash of the manifest bytes, so any edit naturally invalidates the entry.
//
// Several backends implement the [Cache] interface:
//   - file: per-user cache directory, the CLI default
//   - memory: in-process LRU, used by the HTTP server
//   - redis: shared cache for multi-runner CI
//   - mongo: shared cache where a document store is already deployed
//   - null: caching disabled
//
// [Open] selects a backend from a URL-style specifier.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTTL is how long cached resolutions stay valid. Entries are keyed
// by manifest content, so the TTL only bounds disk growth, not staleness.
const DefaultTTL = 7 * 24 * time.Hour

// ErrUnsupportedBackend is returned by [Open] for a specifier it cannot map
// to a backend.
var ErrUnsupportedBackend = errors.New("unsupported cache backend")

// Cache is a byte-oriented store with per-entry TTLs. Implementations must
// be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResolutionKey derives the cache key for a manifest's resolution result.
// Any byte-level change to the manifest produces a different key.
func ResolutionKey(manifestData []byte) string {
	return "resolution:" + Hash(manifestData)
}

// Open creates a cache backend from a specifier:
//
//	""                    file cache in the default user cache directory
//	"none" or "off"       caching disabled
//	"memory"              in-process LRU
//	"redis://..."         Redis (also rediss://)
//	"mongodb://..."       MongoDB (also mongodb+srv://)
//	anything else         file cache rooted at that path
func Open(ctx context.Context, spec string) (Cache, error) {
	switch {
	case spec == "none" || spec == "off":
		return NewNull(), nil
	case spec == "memory":
		return NewMemory(DefaultMemoryEntries)
	case strings.HasPrefix(spec, "redis://") || strings.HasPrefix(spec, "rediss://"):
		return NewRedis(spec)
	case strings.HasPrefix(spec, "mongodb://") || strings.HasPrefix(spec, "mongodb+srv://"):
		return NewMongo(ctx, spec)
	case strings.Contains(spec, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, spec)
	case spec == "":
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		return NewFile(dir)
	default:
		return NewFile(spec)
	}
}

// defaultDir returns the conventional per-user cache directory.
func defaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(base, "deptower"), nil
}
