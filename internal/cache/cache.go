// Package cache remembers recent contact form submissions so that a
// double-clicked submit button does not send the same mail twice.
package cache

import (
	"context"
	"time"
)

// Store records submission keys for a limited time
type Store interface {
	// Claim records key for ttl unless it is already held. It reports
	// whether this caller now holds the key; check and set are atomic.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release forgets key so it can be claimed again
	Release(ctx context.Context, key string) error
	// Clear forgets every key under the store's prefix
	Clear(ctx context.Context) error
	Close() error
}
