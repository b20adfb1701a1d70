// Package cache stores computed layouts and rendered artifacts so
// repeated runs over the same graph skip the expensive stages. Keys
// are content-addressed: a graph hash plus the options that shaped the
// result.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry class. Layouts are cheap to recompute and
// expire sooner than rendered artifacts.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Get reports a miss with found=false and a nil error; errors are
// reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
