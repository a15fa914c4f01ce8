// ABOUTME: Response DTOs for feed-related API endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

import "time"

// FeedResponse represents a merged or single-source feed in JSON responses
type FeedResponse struct {
	ID      string          `json:"id" doc:"Feed identifier; the category name for merged feeds"`
	Title   string          `json:"title" doc:"Feed title"`
	Link    string          `json:"link" doc:"Self link of the feed"`
	Author  string          `json:"author" doc:"Feed author name"`
	Entries []EntryResponse `json:"entries" doc:"Entries, latest first"`
}

// EntryResponse represents a feed entry in JSON responses
type EntryResponse struct {
	ID      string    `json:"id" doc:"Entry identifier"`
	Title   string    `json:"title" doc:"Entry title"`
	Link    string    `json:"link" doc:"Link to the full article"`
	Updated time.Time `json:"updated" doc:"When the entry was last updated"`
	Summary string    `json:"summary,omitempty" doc:"Plain-text summary"`
}

// CategoryResponse describes one configured category
type CategoryResponse struct {
	Name    string `json:"name" doc:"Category name"`
	Sources int    `json:"sources" doc:"Number of configured source feeds"`
	Link    string `json:"link" doc:"Link to the merged Atom feed"`
}

// CategoriesResponse lists configured categories sorted by name
type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories" doc:"Configured categories"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status     string `json:"status" doc:"Service status"`
	Categories int    `json:"categories" doc:"Number of configured categories"`
}
