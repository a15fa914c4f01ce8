// ABOUTME: Category aggregator fans out source fetches and merges the survivors
// ABOUTME: Source failures are logged and dropped; only unknown categories are errors

package feed

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"feedmerge-api/core/domain"
	coreerrors "feedmerge-api/core/errors"
	"feedmerge-api/core/interfaces"
	"golang.org/x/sync/errgroup"
)

// AggregatorConfig tunes the category fan-out
type AggregatorConfig struct {
	// PublicURL is the externally visible base URL used for category self links
	PublicURL string

	// FetchTimeout bounds each source task; zero disables the bound
	FetchTimeout time.Duration

	// MaxConcurrency limits in-flight source tasks per request; zero is unlimited
	MaxConcurrency int
}

// DefaultAggregatorConfig returns the default aggregator configuration
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		PublicURL:      "http://localhost:8000",
		FetchTimeout:   10 * time.Second,
		MaxConcurrency: 8,
	}
}

// CategoryAggregator produces one merged feed per configured category.
// Its category map is read-only after construction.
type CategoryAggregator struct {
	categories   map[string]*domain.Category
	fetcher      interfaces.Fetcher
	deserializer interfaces.Deserializer
	logger       interfaces.Logger
	config       AggregatorConfig
}

// NewCategoryAggregator creates an aggregator over validated categories
func NewCategoryAggregator(
	categories map[string]*domain.Category,
	fetcher interfaces.Fetcher,
	deserializer interfaces.Deserializer,
	logger interfaces.Logger,
	config AggregatorConfig,
) *CategoryAggregator {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	if categories == nil {
		categories = map[string]*domain.Category{}
	}

	return &CategoryAggregator{
		categories:   categories,
		fetcher:      fetcher,
		deserializer: deserializer,
		logger:       logger,
		config:       config,
	}
}

// sourceResult is the isolated outcome of one source task
type sourceResult struct {
	source string
	feed   *domain.Feed
	err    error
}

// FeedByCategory fetches every source of the named category concurrently and
// merges the feeds that were fetched and parsed successfully. Failing sources
// are logged and omitted, so a known category always yields a feed.
func (a *CategoryAggregator) FeedByCategory(ctx context.Context, name string) (*domain.Feed, error) {
	category, ok := a.categories[name]
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "category", ID: name}
	}

	start := time.Now()
	results := a.fetchAll(ctx, category.Sources())

	feeds := make([]*domain.Feed, 0, len(results))
	for _, result := range results {
		if result.err != nil {
			a.logger.Warn("Failed to fetch feed as part of category, it will not be part of the category feed", map[string]interface{}{
				"category": name,
				"source":   result.source,
				"error":    result.err.Error(),
			})
			continue
		}
		feeds = append(feeds, result.feed)
	}

	merged := domain.MergeFeeds(name, a.CategoryLink(name), feeds)

	a.logger.Debug("Built category feed", map[string]interface{}{
		"category":    name,
		"sources":     len(results),
		"failed":      len(results) - len(feeds),
		"entries":     len(merged.Entries),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return merged, nil
}

// FeedBySource fetches a single source that is configured in some category.
// Unlike FeedByCategory, fetch and parse errors are returned to the caller.
func (a *CategoryAggregator) FeedBySource(ctx context.Context, source string) (*domain.Feed, error) {
	u, err := domain.ParseSourceURL(source)
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "url", Message: err.Error()}
	}

	normalized := u.String()
	if !a.isConfiguredSource(normalized) {
		return nil, &coreerrors.NotFoundError{Resource: "source", ID: normalized}
	}

	result := a.fetchSource(ctx, normalized)
	if result.err != nil {
		return nil, result.err
	}
	return result.feed, nil
}

// Categories returns a summary of every configured category sorted by name
func (a *CategoryAggregator) Categories() []interfaces.CategorySummary {
	summaries := make([]interfaces.CategorySummary, 0, len(a.categories))
	for name, category := range a.categories {
		summaries = append(summaries, interfaces.CategorySummary{
			Name:    name,
			Sources: len(category.Sources()),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

// CategoryLink returns the self link of a category's merged Atom feed
func (a *CategoryAggregator) CategoryLink(name string) string {
	base := strings.TrimRight(a.config.PublicURL, "/")
	return fmt.Sprintf("%s/feeds/%s/atom.xml", base, url.PathEscape(name))
}

// fetchAll runs one task per source and returns results in source order
func (a *CategoryAggregator) fetchAll(ctx context.Context, sources []string) []sourceResult {
	results := make([]sourceResult, len(sources))

	var g errgroup.Group
	if a.config.MaxConcurrency > 0 {
		g.SetLimit(a.config.MaxConcurrency)
	}

	for i, source := range sources {
		g.Go(func() error {
			results[i] = a.fetchSource(ctx, source)
			return nil
		})
	}

	// tasks never return errors; failures travel in results
	_ = g.Wait()
	return results
}

// fetchSource downloads and parses one source under the per-task timeout
func (a *CategoryAggregator) fetchSource(ctx context.Context, source string) (result sourceResult) {
	result.source = source

	defer func() {
		if r := recover(); r != nil {
			result.feed = nil
			result.err = fmt.Errorf("panic while fetching feed %s: %v", source, r)
		}
	}()

	if a.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.FetchTimeout)
		defer cancel()
	}

	data, err := a.fetcher.Fetch(ctx, source)
	if err != nil {
		result.err = fmt.Errorf("downloading feed %s: %w", source, err)
		return result
	}

	feed, err := a.deserializer.Parse(data)
	if err != nil {
		result.err = fmt.Errorf("parsing feed %s: %w", source, err)
		return result
	}

	result.feed = feed
	return result
}

func (a *CategoryAggregator) isConfiguredSource(source string) bool {
	for _, category := range a.categories {
		if category.HasSource(source) {
			return true
		}
	}
	return false
}
