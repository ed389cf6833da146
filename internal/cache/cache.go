package cache

import (
	"context"
	"time"
)

// Store is an expiring key/value memo. Keys are opaque strings built by
// callers; values are raw blobs (the resolver stores JSON). An entry is
// visible only while now < its expiry; an expired entry behaves exactly
// like a missing one.
type Store interface {
	// Get returns (value, true, nil) for a live entry and (nil, false, nil)
	// for a missing or expired one.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl. Last write wins.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
