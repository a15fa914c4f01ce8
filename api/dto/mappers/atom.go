// ABOUTME: Maps domain feeds to Atom documents and renders them as indented XML
// ABOUTME: The document's updated timestamp is the time of rendering

package mappers

import (
	"encoding/xml"
	"fmt"
	"time"

	"feedmerge-api/api/dto/responses"
	"feedmerge-api/core/domain"
)

// ToAtomFeed converts a domain Feed to its Atom document model
func ToAtomFeed(feed *domain.Feed, renderedAt time.Time) *responses.AtomFeed {
	if feed == nil {
		return nil
	}

	doc := &responses.AtomFeed{
		XMLNS:   responses.AtomNamespace,
		Title:   feed.Title,
		ID:      feed.ID,
		Updated: renderedAt.UTC().Format(time.RFC3339),
		Author:  responses.AtomAuthor{Name: feed.AuthorName},
		Links: []responses.AtomLink{{
			Href: feed.Link,
			Rel:  "self",
			Type: "application/atom+xml",
		}},
		Entries: make([]responses.AtomEntry, 0, len(feed.Entries)),
	}

	for _, entry := range feed.Entries {
		doc.Entries = append(doc.Entries, responses.AtomEntry{
			Title:   entry.Title,
			ID:      entry.ID,
			Link:    responses.AtomLink{Href: entry.Link, Rel: "alternate"},
			Updated: entry.Updated.Format(time.RFC3339),
			Summary: entry.Summary,
		})
	}

	return doc
}

// RenderAtom serializes feed as an indented Atom 1.0 document with an XML declaration
func RenderAtom(feed *domain.Feed, renderedAt time.Time) ([]byte, error) {
	doc := ToAtomFeed(feed, renderedAt)
	if doc == nil {
		return nil, fmt.Errorf("rendering atom: nil feed")
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("rendering atom feed %s: %w", feed.ID, err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
