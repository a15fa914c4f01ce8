// ABOUTME: Mappers for converting between domain models and JSON API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"feedmerge-api/api/dto/responses"
	"feedmerge-api/core/domain"
	"feedmerge-api/core/interfaces"
)

// ToFeedResponse converts a domain Feed to a FeedResponse DTO
func ToFeedResponse(feed *domain.Feed) *responses.FeedResponse {
	if feed == nil {
		return nil
	}

	response := &responses.FeedResponse{
		ID:      feed.ID,
		Title:   feed.Title,
		Link:    feed.Link,
		Author:  feed.AuthorName,
		Entries: make([]responses.EntryResponse, 0, len(feed.Entries)),
	}

	for _, entry := range feed.Entries {
		response.Entries = append(response.Entries, responses.EntryResponse{
			ID:      entry.ID,
			Title:   entry.Title,
			Link:    entry.Link,
			Updated: entry.Updated,
			Summary: entry.Summary,
		})
	}

	return response
}

// ToCategoriesResponse converts category summaries, linking each to its Atom feed
func ToCategoriesResponse(summaries []interfaces.CategorySummary, link func(name string) string) *responses.CategoriesResponse {
	response := &responses.CategoriesResponse{
		Categories: make([]responses.CategoryResponse, 0, len(summaries)),
	}

	for _, summary := range summaries {
		response.Categories = append(response.Categories, responses.CategoryResponse{
			Name:    summary.Name,
			Sources: summary.Sources,
			Link:    link(summary.Name),
		})
	}

	return response
}
