// ABOUTME: Main entry point for the feedmerge API server
// ABOUTME: Wires configuration, caches, the category aggregator and the HTTP server

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedmerge-api/api"
	"feedmerge-api/api/handlers"
	"feedmerge-api/core/cache"
	"feedmerge-api/core/domain"
	coreerrors "feedmerge-api/core/errors"
	"feedmerge-api/core/feed"
	"feedmerge-api/core/interfaces"
	"feedmerge-api/core/workers"
	"feedmerge-api/infrastructure/cache/memory"
	"feedmerge-api/infrastructure/cache/redis"
	stdhttp "feedmerge-api/infrastructure/http/standard"
	"feedmerge-api/infrastructure/logger/structured"
	"feedmerge-api/pkg/config"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a config file (toml, yaml or json)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := structured.New(structured.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	renderCache, closeCache := newRenderCache(cfg.Render, logger)
	defer closeCache()

	deps := interfaces.Dependencies{
		Cache: renderCache,
		HTTPClient: stdhttp.NewStandardHTTPClient(stdhttp.ClientConfig{
			Timeout:   cfg.Fetch.Timeout,
			UserAgent: cfg.Fetch.UserAgent,
			Logger:    logger,
		}),
		Logger: logger,
	}

	aggregator, err := newAggregator(cfg, deps)
	if err != nil {
		logger.Error("Invalid category configuration", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	logger.Info("Starting feedmerge API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"public_url": cfg.Server.PublicURL,
		"categories": len(cfg.Categories),
		"cache_ttl":  cfg.Cache.TTL.String(),
		"render":     cfg.Render.CacheType,
	})

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:            logger,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
	})
	handlers.NewCategoryHandler(aggregator, deps.Cache, cfg.Render.TTL, logger).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler(aggregator).RegisterRoutes(humaAPI)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	warmer := workers.NewCacheWarmer(aggregator, logger, workers.WarmerConfig{Interval: cfg.Warmer.Interval})
	if err := warmer.Start(ctx); err != nil {
		logger.Error("Failed to start cache warmer", map[string]interface{}{
			"error": err.Error(),
		})
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server", nil)
	case err := <-serveErr:
		if err != nil {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if err := warmer.Stop(); err != nil {
		logger.Warn("Cache warmer did not stop cleanly", map[string]interface{}{
			"error": err.Error(),
		})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// newAggregator builds the fetch pipeline: HTTP fetcher behind the
// expiring source cache, parsed by the RSS/Atom fallback deserializer
func newAggregator(cfg *config.Config, deps interfaces.Dependencies) (*feed.CategoryAggregator, error) {
	categories, err := domain.NewCategories(cfg.Categories)
	if err != nil {
		return nil, coreerrors.WrapError(err, "building categories")
	}

	sourceCache := cache.New[string, []byte](cfg.Cache.TTL, cache.WithLogger(deps.Logger))
	fetcher := feed.NewCachingFetcher(feed.NewHTTPFetcher(deps.HTTPClient), sourceCache)

	return feed.NewCategoryAggregator(
		categories,
		fetcher,
		feed.DefaultDeserializer(),
		deps.Logger,
		feed.AggregatorConfig{
			PublicURL:      cfg.Server.PublicURL,
			FetchTimeout:   cfg.Fetch.Timeout,
			MaxConcurrency: cfg.Fetch.MaxConcurrency,
		},
	), nil
}

// newRenderCache selects the rendered response cache. A Redis that cannot be
// reached falls back to memory; "none" disables the cache.
func newRenderCache(cfg config.RenderConfig, logger interfaces.Logger) (interfaces.Cache, func()) {
	noop := func() {}

	switch cfg.CacheType {
	case "none":
		logger.Info("Rendered response cache disabled", nil)
		return nil, noop
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), noop
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, func() {
			if err := redisCache.Close(); err != nil {
				logger.Warn("Failed to close Redis cache", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), noop
	}
}
