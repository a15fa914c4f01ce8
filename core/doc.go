// Package core contains the framework-agnostic logic of the feed merger.
//
// Sub-packages:
//
// - domain: Feed, Entry and Category models plus MergeFeeds
// - cache: generic expiring cache with stale fallback and per-key single flight
// - feed: fetchers, RSS/Atom deserializers and the category aggregator
// - workers: background cache warmer
// - errors: typed errors mapped to HTTP statuses by the api layer
// - interfaces: contracts for cache, HTTP, logging and feed providers
//
// External dependencies are injected through interfaces so every component
// can be tested with hand-written mocks.
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: httpClient, // implements interfaces.HTTPClient
//	    Logger:     logger,     // implements interfaces.Logger
//	}
//
//	categories, err := domain.NewCategories(map[string][]string{
//	    "comedy": {"https://james.example/feed.xml", "https://jessica.example/atom.xml"},
//	})
//
//	sourceCache := cache.New[string, []byte](15*time.Minute, cache.WithLogger(deps.Logger))
//	fetcher := feed.NewCachingFetcher(feed.NewHTTPFetcher(deps.HTTPClient), sourceCache)
//	aggregator := feed.NewCategoryAggregator(categories, fetcher, feed.DefaultDeserializer(), deps.Logger, feed.DefaultAggregatorConfig())
//
//	merged, err := aggregator.FeedByCategory(ctx, "comedy")
package core
