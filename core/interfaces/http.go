// ABOUTME: Outbound HTTP contract used by the feed fetcher
// ABOUTME: GET only, with no retries at this layer

package interfaces

import (
	"context"
	"io"
)

// HTTPClient retrieves upstream documents. Implementations report transport
// failures as errors and leave non-2xx handling to the caller.
type HTTPClient interface {
	Get(ctx context.Context, url string) (Response, error)
}

// Response is an upstream HTTP response
type Response interface {
	StatusCode() int

	// Body must be closed by the caller
	Body() io.ReadCloser

	// Header looks up a response header case-insensitively
	Header(key string) string
}
