// ABOUTME: Standard HTTP client implementation with timeout and user agent support
// ABOUTME: Feed fetches are single attempts; callers decide how to handle failures

package standard

import (
	"context"
	"io"
	"net/http"
	"time"

	"feedmerge-api/core/interfaces"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "feedmerge/1.0"

// ClientConfig configures the HTTP client
type ClientConfig struct {
	// Timeout bounds a whole request including reading the body
	Timeout time.Duration

	// UserAgent is sent with every request
	UserAgent string

	// Logger enables outgoing request logging when set
	Logger interfaces.Logger
}

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewStandardHTTPClient creates a new HTTP client from cfg
func NewStandardHTTPClient(cfg ClientConfig) *StandardHTTPClient {
	var transport http.RoundTripper = http.DefaultTransport
	if cfg.Logger != nil {
		transport = &LoggingRoundTripper{Transport: transport, Logger: cfg.Logger}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		userAgent: userAgent,
	}
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
