// ABOUTME: Generic expiring cache that memoizes a fallible computation per key
// ABOUTME: Serves stale values when recomputation after expiry fails

// Package cache provides ExpiringCache, a key/value memoizer with a fixed TTL.
//
// Lookup policy for GetOrCompute:
//
//   - no entry: compute; store on success, return the error otherwise
//   - entry not expired: return it without computing
//   - entry expired: compute; store and return on success, otherwise log a
//     warning and return the stale value
//
// Every key owns an independent slot lock, so different keys never contend.
// The lock is held while computing, which makes computation single-flight per
// key: concurrent callers of an expired key wait for the one in-flight compute
// and then read its result. A waiter whose context ends before the compute
// finishes gets the stale value when one exists, and an error only when the
// key has never been computed.
//
// Entries are published atomically, so fresh hits never take the slot lock.
//
// Slots are never evicted.
package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"feedmerge-api/core/interfaces"
)

// ComputeFunc produces a fresh value for a key
type ComputeFunc[V any] func(ctx context.Context) (V, error)

// Option configures an ExpiringCache
type Option func(*options)

type options struct {
	now    func() time.Time
	logger interfaces.Logger
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used for stale fallback warnings
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// entry is a cached value together with its absolute expiration time
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// slot holds the optional entry of one key. lock serializes computes and is a
// one-element semaphore so waiters can give up when their context ends.
type slot[V any] struct {
	lock  chan struct{}
	entry atomic.Pointer[entry[V]]
}

func (s *slot[V]) acquire(ctx context.Context) error {
	select {
	case s.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *slot[V]) release() {
	<-s.lock
}

// ExpiringCache memoizes values per key for a fixed TTL.
// It is safe for concurrent use and must not be copied after first use.
type ExpiringCache[K comparable, V any] struct {
	ttl    time.Duration
	slots  sync.Map // K -> *slot[V]
	now    func() time.Time
	logger interfaces.Logger
}

// New creates an ExpiringCache whose entries expire ttl after they were computed
func New[K comparable, V any](ttl time.Duration, opts ...Option) *ExpiringCache[K, V] {
	o := options{
		now:    time.Now,
		logger: interfaces.NopLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &ExpiringCache[K, V]{
		ttl:    ttl,
		now:    o.now,
		logger: o.logger,
	}
}

// TTL returns the configured expiration duration
func (c *ExpiringCache[K, V]) TTL() time.Duration {
	return c.ttl
}

// GetOrCompute returns the cached value for key, computing it when it is
// missing or expired. See the package documentation for the fallback policy.
func (c *ExpiringCache[K, V]) GetOrCompute(ctx context.Context, key K, compute ComputeFunc[V]) (V, error) {
	var zero V

	s := c.slotFor(key)
	if e := s.entry.Load(); e != nil && c.fresh(e) {
		return e.value, nil
	}

	if err := s.acquire(ctx); err != nil {
		if e := s.entry.Load(); e != nil {
			c.warnStale(key, e, err)
			return e.value, nil
		}
		return zero, fmt.Errorf("waiting for cache key %v: %w", key, err)
	}
	defer s.release()

	// another caller may have refreshed the entry while we waited
	current := s.entry.Load()
	if current != nil && c.fresh(current) {
		return current.value, nil
	}

	value, err := compute(ctx)
	if err != nil {
		if current != nil {
			c.warnStale(key, current, err)
			return current.value, nil
		}
		return zero, fmt.Errorf("computing cache key %v with nothing cached: %w", key, err)
	}

	s.entry.Store(&entry[V]{value: value, expiresAt: c.now().Add(c.ttl)})
	return value, nil
}

// Len returns the number of keys holding a value, expired or not.
// It never waits on an in-flight compute.
func (c *ExpiringCache[K, V]) Len() int {
	n := 0
	c.slots.Range(func(_, v any) bool {
		if v.(*slot[V]).entry.Load() != nil {
			n++
		}
		return true
	})
	return n
}

func (c *ExpiringCache[K, V]) fresh(e *entry[V]) bool {
	return c.now().Before(e.expiresAt)
}

func (c *ExpiringCache[K, V]) warnStale(key K, e *entry[V], err error) {
	c.logger.Warn("Failed to recompute expired cache entry, serving stale value", map[string]interface{}{
		"key":        fmt.Sprint(key),
		"expired_at": e.expiresAt.Format(time.RFC3339),
		"error":      err.Error(),
	})
}

func (c *ExpiringCache[K, V]) slotFor(key K) *slot[V] {
	if s, ok := c.slots.Load(key); ok {
		return s.(*slot[V])
	}
	s, _ := c.slots.LoadOrStore(key, &slot[V]{lock: make(chan struct{}, 1)})
	return s.(*slot[V])
}
