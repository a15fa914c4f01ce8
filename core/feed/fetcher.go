// ABOUTME: Fetchers retrieve raw feed bytes over HTTP, optionally through the expiring cache
// ABOUTME: Transport failures are reported as NetworkError and never retried here

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"feedmerge-api/core/cache"
	coreerrors "feedmerge-api/core/errors"
	"feedmerge-api/core/interfaces"
)

// DefaultMaxBodyBytes bounds how much of a response body is read
const DefaultMaxBodyBytes int64 = 10 << 20

// HTTPFetcher implements interfaces.Fetcher on top of an HTTPClient
type HTTPFetcher struct {
	client       interfaces.HTTPClient
	maxBodyBytes int64
}

// NewHTTPFetcher creates a fetcher that reads at most DefaultMaxBodyBytes per response
func NewHTTPFetcher(client interfaces.HTTPClient) *HTTPFetcher {
	return &HTTPFetcher{
		client:       client,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Fetch performs a GET request and returns the body of a 2xx response
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.client == nil {
		return nil, &coreerrors.NetworkError{URL: url, Err: errors.New("HTTP client not configured")}
	}

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, &coreerrors.NetworkError{URL: url, Err: err}
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &coreerrors.NetworkError{URL: url, StatusCode: resp.StatusCode()}
	}

	data, err := io.ReadAll(io.LimitReader(body, f.maxBodyBytes+1))
	if err != nil {
		return nil, &coreerrors.NetworkError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}
	if int64(len(data)) > f.maxBodyBytes {
		return nil, &coreerrors.NetworkError{URL: url, Err: fmt.Errorf("body exceeds %d bytes", f.maxBodyBytes)}
	}

	return data, nil
}

// CachingFetcher memoizes a Fetcher per URL in an ExpiringCache.
// Callers share the returned byte slices and must not modify them.
type CachingFetcher struct {
	delegate interfaces.Fetcher
	cache    *cache.ExpiringCache[string, []byte]
}

// NewCachingFetcher wraps delegate with the given cache. The cache is owned by
// the caller and may be shared with other components.
func NewCachingFetcher(delegate interfaces.Fetcher, c *cache.ExpiringCache[string, []byte]) *CachingFetcher {
	return &CachingFetcher{
		delegate: delegate,
		cache:    c,
	}
}

// Fetch returns cached bytes for url, falling back to stale bytes when a
// refresh of an expired entry fails.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := f.cache.GetOrCompute(ctx, url, func(ctx context.Context) ([]byte, error) {
		return f.delegate.Fetch(ctx, url)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s through cache: %w", url, err)
	}
	return data, nil
}
