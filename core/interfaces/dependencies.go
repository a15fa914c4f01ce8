// ABOUTME: Collaborators shared by the process wiring in cmd/api
// ABOUTME: Bundles the render cache, outbound HTTP client and logger

package interfaces

// Dependencies groups the collaborators the feed pipeline and handlers are built from
type Dependencies struct {
	// Cache holds rendered category documents; nil disables it
	Cache Cache

	// HTTPClient fetches upstream feeds
	HTTPClient HTTPClient

	Logger Logger
}
