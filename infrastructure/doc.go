// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// - cache/memory: rendered response cache on patrickmn/go-cache
// - cache/redis: rendered response cache on go-redis
// - http/standard: net/http client with a request-logging transport
// - logger/structured: logrus-backed leveled logger
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "atom:category:comedy", body, 30*time.Second)
//	body, err := cache.Get(ctx, "atom:category:comedy")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// Both return interfaces.ErrCacheMiss for absent or expired keys.
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(standard.ClientConfig{
//	    Timeout:   10 * time.Second,
//	    UserAgent: "feedmerge/1.0",
//	    Logger:    logger,
//	})
//	resp, err := client.Get(ctx, "https://james.example/feed.xml")
//	defer resp.Body().Close()
//
// # Logger
//
//	logger, err := structured.New(structured.Config{Level: "info", Format: "json"})
//	logger.Info("Fetched source", map[string]interface{}{
//	    "source": url,
//	})
package infrastructure
