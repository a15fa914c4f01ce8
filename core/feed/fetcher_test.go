package feed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"feedmerge-api/core/cache"
	coreerrors "feedmerge-api/core/errors"
	"feedmerge-api/core/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_ReturnsBody(t *testing.T) {
	resp := &mockResponse{statusCode: 200, body: "<rss/>"}
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			assert.Equal(t, "https://a.example/rss", url)
			return resp, nil
		},
	}

	data, err := NewHTTPFetcher(client).Fetch(context.Background(), "https://a.example/rss")

	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(data))
	assert.True(t, resp.closed, "body should be closed")
}

func TestHTTPFetcher_Non2xxIsNetworkError(t *testing.T) {
	resp := &mockResponse{statusCode: 503, body: "unavailable"}
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return resp, nil
		},
	}

	data, err := NewHTTPFetcher(client).Fetch(context.Background(), "https://a.example/rss")

	require.Error(t, err)
	assert.Nil(t, data)
	var netErr *coreerrors.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, 503, netErr.StatusCode)
	assert.True(t, resp.closed, "body should be closed on error status")
}

func TestHTTPFetcher_TransportErrorIsNetworkError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, cause
		},
	}

	_, err := NewHTTPFetcher(client).Fetch(context.Background(), "https://a.example/rss")

	assert.True(t, coreerrors.IsNetwork(err))
	assert.ErrorIs(t, err, cause)
}

func TestHTTPFetcher_BodyTooLarge(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: strings.Repeat("x", 32)}, nil
		},
	}
	fetcher := NewHTTPFetcher(client)
	fetcher.maxBodyBytes = 16

	_, err := fetcher.Fetch(context.Background(), "https://a.example/rss")

	assert.True(t, coreerrors.IsNetwork(err))
}

func TestHTTPFetcher_NoClient(t *testing.T) {
	_, err := NewHTTPFetcher(nil).Fetch(context.Background(), "https://a.example/rss")

	assert.True(t, coreerrors.IsNetwork(err))
}

func TestCachingFetcher_ServesFromCacheWithinTTL(t *testing.T) {
	delegate := &mockFetcher{
		fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			return []byte("payload"), nil
		},
	}
	fetcher := NewCachingFetcher(delegate, cache.New[string, []byte](time.Hour))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		data, err := fetcher.Fetch(ctx, "https://a.example/rss")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	}

	assert.Equal(t, 1, delegate.callCount("https://a.example/rss"))
}

func TestCachingFetcher_KeysByURL(t *testing.T) {
	delegate := &mockFetcher{
		fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			return []byte(url), nil
		},
	}
	fetcher := NewCachingFetcher(delegate, cache.New[string, []byte](time.Hour))
	ctx := context.Background()

	a, err := fetcher.Fetch(ctx, "https://a.example/rss")
	require.NoError(t, err)
	b, err := fetcher.Fetch(ctx, "https://b.example/rss")
	require.NoError(t, err)

	assert.Equal(t, "https://a.example/rss", string(a))
	assert.Equal(t, "https://b.example/rss", string(b))
}

func TestCachingFetcher_StaleFallbackOnExpiredFailure(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	fail := false
	delegate := &mockFetcher{
		fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			if fail {
				return nil, &coreerrors.NetworkError{URL: url, StatusCode: 500}
			}
			return []byte("v1"), nil
		},
	}
	logger := &mockLogger{}
	fetcher := NewCachingFetcher(delegate, cache.New[string, []byte](time.Minute, cache.WithClock(clock), cache.WithLogger(logger)))
	ctx := context.Background()

	_, err := fetcher.Fetch(ctx, "https://a.example/rss")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	fail = true
	data, err := fetcher.Fetch(ctx, "https://a.example/rss")

	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
	assert.Equal(t, 2, delegate.callCount("https://a.example/rss"))
	assert.Len(t, logger.byLevel("warn"), 1)
}

func TestCachingFetcher_ColdFailureNamesURL(t *testing.T) {
	delegate := &mockFetcher{
		fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			return nil, &coreerrors.NetworkError{URL: url, Err: errors.New("timeout")}
		},
	}
	fetcher := NewCachingFetcher(delegate, cache.New[string, []byte](time.Hour))

	_, err := fetcher.Fetch(context.Background(), "https://down.example/rss")

	require.Error(t, err)
	assert.True(t, coreerrors.IsNetwork(err))
	assert.Contains(t, err.Error(), "https://down.example/rss")
}
