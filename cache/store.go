// Package cache provides the key/value stores behind the home timeline cache.
//
// Stores hold opaque rendered response bytes. Every implementation scopes its keys
// under a prefix so Clear never touches data owned by other components.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the cache abstraction injected into the timeline.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}
