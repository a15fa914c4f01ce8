// ABOUTME: Cache warmer periodically rebuilds every category feed in the background
// ABOUTME: Keeps the source cache hot so requests rarely wait on upstream fetches

package workers

import (
	"context"
	"sync"
	"time"

	"feedmerge-api/core/interfaces"
)

// WarmerConfig holds configuration for the cache warmer
type WarmerConfig struct {
	// Interval between warm cycles; zero or negative disables the warmer
	Interval time.Duration

	// CycleTimeout bounds a single warm cycle; zero means Interval
	CycleTimeout time.Duration
}

// CacheWarmer rebuilds every category on a fixed interval
type CacheWarmer struct {
	provider interfaces.FeedProvider
	logger   interfaces.Logger
	config   WarmerConfig

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewCacheWarmer creates a new cache warmer
func NewCacheWarmer(provider interfaces.FeedProvider, logger interfaces.Logger, config WarmerConfig) *CacheWarmer {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	if config.CycleTimeout <= 0 {
		config.CycleTimeout = config.Interval
	}

	return &CacheWarmer{
		provider: provider,
		logger:   logger,
		config:   config,
	}
}

// Enabled reports whether the warmer has a positive interval
func (w *CacheWarmer) Enabled() bool {
	return w.config.Interval > 0
}

// Start runs an immediate warm cycle and then one per interval until Stop is
// called or ctx is cancelled. Starting a disabled or running warmer is a no-op.
func (w *CacheWarmer) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || !w.Enabled() {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true

	w.wg.Add(1)
	go w.run(ctx)

	w.logger.Info("Cache warmer started", map[string]interface{}{
		"interval": w.config.Interval.String(),
	})
	return nil
}

// Stop stops the warmer and waits for an in-progress cycle to finish
func (w *CacheWarmer) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.cancel()
	w.wg.Wait()
	w.running = false

	w.logger.Info("Cache warmer stopped", nil)
	return nil
}

func (w *CacheWarmer) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.WarmOnce(ctx)
	for {
		select {
		case <-ticker.C:
			w.WarmOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// WarmOnce builds every configured category once and returns how many were built
func (w *CacheWarmer) WarmOnce(ctx context.Context) int {
	if w.config.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.config.CycleTimeout)
		defer cancel()
	}

	start := time.Now()
	warmed := 0
	for _, summary := range w.provider.Categories() {
		if ctx.Err() != nil {
			break
		}
		if _, err := w.provider.FeedByCategory(ctx, summary.Name); err != nil {
			w.logger.Warn("Failed to warm category", map[string]interface{}{
				"category": summary.Name,
				"error":    err.Error(),
			})
			continue
		}
		warmed++
	}

	w.logger.Debug("Cache warm cycle finished", map[string]interface{}{
		"categories":  warmed,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return warmed
}
