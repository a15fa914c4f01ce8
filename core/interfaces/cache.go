// Package interfaces holds the contracts between the core and its collaborators.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// Cache stores rendered documents by key. The memory and redis
// implementations share these semantics.
//
//	// Store a rendered document
//	err := cache.Set(ctx, "atom:comedy", body, 30*time.Second)
//
//	// Retrieve it
//	data, err := cache.Get(ctx, "atom:comedy")
//	if errors.Is(err, interfaces.ErrCacheMiss) {
//		// render again
//	}
type Cache interface {
	// Get returns ErrCacheMiss for absent or expired keys
	Get(ctx context.Context, key string) ([]byte, error)

	// Set with a non-positive ttl keeps the value until deleted
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete of an absent key is not an error
	Delete(ctx context.Context, key string) error
}
