// ABOUTME: Feed pipeline interfaces for fetching and parsing source feeds
// ABOUTME: Fetchers and deserializers are swappable strategies composed by the core

package interfaces

import (
	"context"

	"feedmerge-api/core/domain"
)

// Fetcher retrieves the raw bytes behind a URL.
// Implementations fail with a NetworkError on any transport or HTTP-level failure
// and do not retry.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Deserializer turns raw bytes into a Feed.
// Implementations fail with a MalformedError on invalid or unrecognized content.
type Deserializer interface {
	Parse(data []byte) (*domain.Feed, error)
}

// FeedProvider produces merged category feeds
type FeedProvider interface {
	// FeedByCategory returns the merged feed for a configured category.
	// The only error it returns is a NotFoundError for unknown names.
	FeedByCategory(ctx context.Context, name string) (*domain.Feed, error)

	// FeedBySource returns a single configured source, fetched through the cache.
	FeedBySource(ctx context.Context, source string) (*domain.Feed, error)

	// Categories returns the configured category names in sorted order.
	Categories() []CategorySummary

	// CategoryLink returns the public self link of a category's merged feed.
	CategoryLink(name string) string
}

// CategorySummary describes a configured category
type CategorySummary struct {
	Name    string
	Sources int
}
