package feed

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"feedmerge-api/core/cache"
	"feedmerge-api/core/domain"
	coreerrors "feedmerge-api/core/errors"
	"feedmerge-api/core/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	url1 = "https://james.example/feed.xml"
	url2 = "https://jessica.example/feed.xml"
	url3 = "https://down.example/feed.xml"
)

// sourceFeeds maps each fake source to the feed its deserialized body yields.
// The fake fetcher returns the URL itself as the body so the fake
// deserializer can look the feed up.
func sourceFeeds() map[string]*domain.Feed {
	return map[string]*domain.Feed{
		url1: {
			Title: "James",
			Entries: []domain.Entry{
				{ID: "j1", Title: "James old", Updated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
				{ID: "j2", Title: "James new", Updated: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
			},
		},
		url2: {
			Title: "Jessica",
			Entries: []domain.Entry{
				{ID: "s1", Title: "Jessica mid", Updated: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
			},
		},
	}
}

func newTestAggregator(t *testing.T, fetcher interfaces.Fetcher, logger *mockLogger, config AggregatorConfig) *CategoryAggregator {
	t.Helper()

	categories, err := domain.NewCategories(map[string][]string{
		"comedy": {url1, url2, url3},
		"solo":   {url1},
		"empty":  {},
	})
	require.NoError(t, err)

	feeds := sourceFeeds()
	deserializer := &mockDeserializer{parseFunc: func(data []byte) (*domain.Feed, error) {
		feed, ok := feeds[string(data)]
		if !ok {
			return nil, &coreerrors.MalformedError{Format: "rss", Err: errors.New("unknown body")}
		}
		return feed, nil
	}}

	return NewCategoryAggregator(categories, fetcher, deserializer, logger, config)
}

func echoFetcher() *mockFetcher {
	return &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		if url == url3 {
			return nil, &coreerrors.NetworkError{URL: url, StatusCode: 500}
		}
		return []byte(url), nil
	}}
}

func entryIDs(feed *domain.Feed) []string {
	ids := make([]string, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestFeedByCategory_UnknownCategory(t *testing.T) {
	fetcher := echoFetcher()
	agg := newTestAggregator(t, fetcher, &mockLogger{}, DefaultAggregatorConfig())

	feed, err := agg.FeedByCategory(context.Background(), "nope")

	assert.Nil(t, feed)
	assert.True(t, coreerrors.IsNotFound(err))
	assert.Equal(t, 0, fetcher.callCount(url1))
}

func TestFeedByCategory_DropsFailingSource(t *testing.T) {
	logger := &mockLogger{}
	agg := newTestAggregator(t, echoFetcher(), logger, DefaultAggregatorConfig())

	feed, err := agg.FeedByCategory(context.Background(), "comedy")

	require.NoError(t, err)
	assert.Equal(t, "comedy", feed.ID)
	assert.Equal(t, "James + Jessica", feed.Title)
	assert.Equal(t, domain.UnknownAuthor, feed.AuthorName)
	assert.Equal(t, "http://localhost:8000/feeds/comedy/atom.xml", feed.Link)
	assert.Equal(t, []string{"j2", "s1", "j1"}, entryIDs(feed))

	warnings := logger.byLevel("warn")
	require.Len(t, warnings, 1)
	assert.Equal(t, "comedy", warnings[0].fields["category"])
	assert.Equal(t, url3, warnings[0].fields["source"])
	assert.Contains(t, warnings[0].fields["error"], url3)
}

func TestFeedByCategory_AllSourcesFail(t *testing.T) {
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		return nil, &coreerrors.NetworkError{URL: url, Err: errors.New("refused")}
	}}
	logger := &mockLogger{}
	agg := newTestAggregator(t, fetcher, logger, DefaultAggregatorConfig())

	feed, err := agg.FeedByCategory(context.Background(), "comedy")

	require.NoError(t, err)
	assert.Equal(t, "", feed.Title)
	assert.NotNil(t, feed.Entries)
	assert.Empty(t, feed.Entries)
	assert.Len(t, logger.byLevel("warn"), 3)
}

func TestFeedByCategory_ParseFailureIsDropped(t *testing.T) {
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		if url == url2 {
			return []byte("garbage"), nil
		}
		return []byte(url), nil
	}}
	logger := &mockLogger{}
	agg := newTestAggregator(t, fetcher, logger, DefaultAggregatorConfig())

	feed, err := agg.FeedByCategory(context.Background(), "comedy")

	require.NoError(t, err)
	assert.Equal(t, "James", feed.Title)
	assert.Len(t, logger.byLevel("warn"), 2)
}

func TestFeedByCategory_EmptyCategory(t *testing.T) {
	agg := newTestAggregator(t, echoFetcher(), &mockLogger{}, DefaultAggregatorConfig())

	feed, err := agg.FeedByCategory(context.Background(), "empty")

	require.NoError(t, err)
	assert.Equal(t, "empty", feed.ID)
	assert.Empty(t, feed.Entries)
}

func TestFeedByCategory_TitleFollowsConfiguredOrder(t *testing.T) {
	// The first source finishes last; the title must still list it first.
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		if url == url1 {
			time.Sleep(30 * time.Millisecond)
		}
		if url == url3 {
			return nil, errors.New("down")
		}
		return []byte(url), nil
	}}
	agg := newTestAggregator(t, fetcher, &mockLogger{}, DefaultAggregatorConfig())

	first, err := agg.FeedByCategory(context.Background(), "comedy")
	require.NoError(t, err)
	second, err := agg.FeedByCategory(context.Background(), "comedy")
	require.NoError(t, err)

	assert.Equal(t, "James + Jessica", first.Title)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, entryIDs(first), entryIDs(second))
}

func TestFeedByCategory_RepeatedWithinTTLIsIdentical(t *testing.T) {
	upstream := echoFetcher()
	fetcher := NewCachingFetcher(upstream, cache.New[string, []byte](time.Hour))
	agg := newTestAggregator(t, fetcher, &mockLogger{}, DefaultAggregatorConfig())

	first, err := agg.FeedByCategory(context.Background(), "comedy")
	require.NoError(t, err)
	second, err := agg.FeedByCategory(context.Background(), "comedy")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"j2", "s1", "j1"}, entryIDs(second))
	assert.Equal(t, 1, upstream.callCount(url1))
	assert.Equal(t, 1, upstream.callCount(url2))
	// failures are never cached, so the broken source is retried
	assert.Equal(t, 2, upstream.callCount(url3))
}

func TestFeedByCategory_ExpiredSourceFallsBackToStaleBody(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	var down atomic.Bool
	upstream := &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		if down.Load() {
			return nil, &coreerrors.NetworkError{URL: url, StatusCode: 503}
		}
		return []byte(url), nil
	}}
	fetcher := NewCachingFetcher(upstream, cache.New[string, []byte](time.Minute, cache.WithClock(clock)))
	logger := &mockLogger{}
	agg := newTestAggregator(t, fetcher, logger, DefaultAggregatorConfig())

	before, err := agg.FeedByCategory(context.Background(), "solo")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	down.Store(true)

	after, err := agg.FeedByCategory(context.Background(), "solo")

	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 2, upstream.callCount(url1))
	assert.Empty(t, logger.byLevel("warn"), "stale fallback is not a dropped source")
}

func TestFeedByCategory_SlowRefreshKeepsStaleSource(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	release := make(chan struct{})
	var slow atomic.Bool
	upstream := &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		if slow.Load() {
			<-release
		}
		return []byte(url), nil
	}}
	sourceCache := cache.New[string, []byte](time.Minute, cache.WithClock(clock))
	fetcher := NewCachingFetcher(upstream, sourceCache)
	logger := &mockLogger{}
	agg := newTestAggregator(t, fetcher, logger, AggregatorConfig{FetchTimeout: 20 * time.Millisecond})

	_, err := agg.FeedByCategory(context.Background(), "solo")
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()
	slow.Store(true)

	refreshing := make(chan struct{})
	go func() {
		defer close(refreshing)
		_, _ = fetcher.Fetch(context.Background(), url1)
	}()
	assert.Eventually(t, func() bool { return upstream.callCount(url1) == 2 }, time.Second, time.Millisecond)

	feed, err := agg.FeedByCategory(context.Background(), "solo")

	close(release)
	<-refreshing
	require.NoError(t, err)
	assert.Equal(t, "James", feed.Title)
	assert.Equal(t, []string{"j2", "j1"}, entryIDs(feed))
	assert.Empty(t, logger.byLevel("warn"))
}

func TestFeedByCategory_FetchesConcurrently(t *testing.T) {
	var inFlight, peak int32
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return []byte(url), nil
	}}
	agg := newTestAggregator(t, fetcher, &mockLogger{}, DefaultAggregatorConfig())

	_, err := agg.FeedByCategory(context.Background(), "comedy")

	require.NoError(t, err)
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1))
}

func TestFeedByCategory_RespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak int32
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return []byte(url), nil
	}}
	config := DefaultAggregatorConfig()
	config.MaxConcurrency = 1
	agg := newTestAggregator(t, fetcher, &mockLogger{}, config)

	_, err := agg.FeedByCategory(context.Background(), "comedy")

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestFeedByCategory_SlowSourceTimesOut(t *testing.T) {
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		if url == url2 {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		if url == url3 {
			return nil, errors.New("down")
		}
		return []byte(url), nil
	}}
	config := DefaultAggregatorConfig()
	config.FetchTimeout = 20 * time.Millisecond
	logger := &mockLogger{}
	agg := newTestAggregator(t, fetcher, logger, config)

	feed, err := agg.FeedByCategory(context.Background(), "comedy")

	require.NoError(t, err)
	assert.Equal(t, "James", feed.Title)
	warnings := logger.byLevel("warn")
	require.Len(t, warnings, 2)
	sources := []interface{}{warnings[0].fields["source"], warnings[1].fields["source"]}
	assert.ElementsMatch(t, []interface{}{url2, url3}, sources)
}

func TestFeedByCategory_PanickingSourceIsIsolated(t *testing.T) {
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		if url == url3 {
			panic("boom")
		}
		return []byte(url), nil
	}}
	logger := &mockLogger{}
	agg := newTestAggregator(t, fetcher, logger, DefaultAggregatorConfig())

	feed, err := agg.FeedByCategory(context.Background(), "comedy")

	require.NoError(t, err)
	assert.Len(t, feed.Entries, 3)
	warnings := logger.byLevel("warn")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].fields["error"], "panic")
}

func TestFeedBySource(t *testing.T) {
	agg := newTestAggregator(t, echoFetcher(), &mockLogger{}, DefaultAggregatorConfig())
	ctx := context.Background()

	t.Run("configured source", func(t *testing.T) {
		feed, err := agg.FeedBySource(ctx, url2)
		require.NoError(t, err)
		assert.Equal(t, "Jessica", feed.Title)
	})

	t.Run("unconfigured source", func(t *testing.T) {
		_, err := agg.FeedBySource(ctx, "https://elsewhere.example/feed.xml")
		assert.True(t, coreerrors.IsNotFound(err))
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := agg.FeedBySource(ctx, "ftp://james.example/feed.xml")
		assert.True(t, coreerrors.IsValidation(err))
	})

	t.Run("failing source returns error", func(t *testing.T) {
		_, err := agg.FeedBySource(ctx, url3)
		require.Error(t, err)
		assert.True(t, coreerrors.IsNetwork(err))
	})
}

func TestCategories_SortedSummaries(t *testing.T) {
	agg := newTestAggregator(t, echoFetcher(), &mockLogger{}, DefaultAggregatorConfig())

	summaries := agg.Categories()

	require.Len(t, summaries, 3)
	assert.Equal(t, "comedy", summaries[0].Name)
	assert.Equal(t, 3, summaries[0].Sources)
	assert.Equal(t, "empty", summaries[1].Name)
	assert.Equal(t, "solo", summaries[2].Name)
	assert.Equal(t, 1, summaries[2].Sources)
}

func TestCategoryLink(t *testing.T) {
	config := DefaultAggregatorConfig()
	config.PublicURL = "https://feeds.example/"
	agg := NewCategoryAggregator(nil, nil, nil, nil, config)

	assert.Equal(t, "https://feeds.example/feeds/comedy/atom.xml", agg.CategoryLink("comedy"))
	link := agg.CategoryLink("stand up")
	assert.True(t, strings.HasSuffix(link, "/feeds/stand%20up/atom.xml"), link)
}
