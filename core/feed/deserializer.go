// ABOUTME: Deserializers convert RSS and Atom documents into the domain feed model
// ABOUTME: FallbackDeserializer tries an ordered list of formats until one succeeds

package feed

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"feedmerge-api/core/domain"
	coreerrors "feedmerge-api/core/errors"
	"feedmerge-api/core/interfaces"
	htmlutil "feedmerge-api/pkg/utils/html"
	timeutil "feedmerge-api/pkg/utils/time"
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

// RSSDeserializer parses RSS 0.9x/1.0/2.0 documents
type RSSDeserializer struct {
	translator gofeed.DefaultRSSTranslator
}

// Parse implements interfaces.Deserializer
func (d *RSSDeserializer) Parse(data []byte) (*domain.Feed, error) {
	parser := &rss.Parser{}
	parsed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &coreerrors.MalformedError{Format: "rss", Err: err}
	}

	translated, err := d.translator.Translate(parsed)
	if err != nil {
		return nil, &coreerrors.MalformedError{Format: "rss", Err: err}
	}
	return convertFeed(translated), nil
}

// AtomDeserializer parses Atom 0.3/1.0 documents
type AtomDeserializer struct {
	translator gofeed.DefaultAtomTranslator
}

// Parse implements interfaces.Deserializer
func (d *AtomDeserializer) Parse(data []byte) (*domain.Feed, error) {
	parser := &atom.Parser{}
	parsed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &coreerrors.MalformedError{Format: "atom", Err: err}
	}

	translated, err := d.translator.Translate(parsed)
	if err != nil {
		return nil, &coreerrors.MalformedError{Format: "atom", Err: err}
	}
	return convertFeed(translated), nil
}

// FallbackDeserializer tries each strategy in order and returns the first success
type FallbackDeserializer struct {
	strategies []interfaces.Deserializer
}

// NewFallbackDeserializer creates a deserializer over an ordered list of strategies
func NewFallbackDeserializer(strategies ...interfaces.Deserializer) *FallbackDeserializer {
	return &FallbackDeserializer{strategies: strategies}
}

// DefaultDeserializer tries RSS first, then Atom
func DefaultDeserializer() *FallbackDeserializer {
	return NewFallbackDeserializer(&RSSDeserializer{}, &AtomDeserializer{})
}

// Parse implements interfaces.Deserializer. When every strategy fails the
// last strategy's error is returned.
func (d *FallbackDeserializer) Parse(data []byte) (*domain.Feed, error) {
	if len(d.strategies) == 0 {
		return nil, &coreerrors.MalformedError{Format: "feed", Err: errors.New("no deserializers configured")}
	}

	var lastErr error
	for _, strategy := range d.strategies {
		feed, err := strategy.Parse(data)
		if err == nil {
			return feed, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("all %d deserializers failed, last error: %w", len(d.strategies), lastErr)
}

// convertFeed maps a gofeed feed to the domain model
func convertFeed(parsed *gofeed.Feed) *domain.Feed {
	feed := &domain.Feed{
		Title:   strings.TrimSpace(parsed.Title),
		Link:    parsed.Link,
		ID:      parsed.Link,
		Entries: make([]domain.Entry, 0, len(parsed.Items)),
	}

	if parsed.FeedLink != "" {
		feed.Link = parsed.FeedLink
		feed.ID = parsed.FeedLink
	}

	if parsed.Author != nil && parsed.Author.Name != "" {
		feed.AuthorName = parsed.Author.Name
	} else if len(parsed.Authors) > 0 && parsed.Authors[0] != nil {
		feed.AuthorName = parsed.Authors[0].Name
	}

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		feed.Entries = append(feed.Entries, convertItem(item))
	}

	return feed
}

// convertItem maps a gofeed item to a domain entry
func convertItem(item *gofeed.Item) domain.Entry {
	entry := domain.Entry{
		Title:   strings.TrimSpace(item.Title),
		Link:    item.Link,
		ID:      item.GUID,
		Updated: entryTime(item),
	}

	// Use link when the source has no GUID
	if entry.ID == "" {
		entry.ID = item.Link
	}

	if item.Description != "" {
		entry.Summary = htmlutil.StripHTML(item.Description)
	} else if item.Content != "" {
		entry.Summary = htmlutil.StripHTML(item.Content)
	}

	return entry
}

// entryTime picks the most specific timestamp available, zero when none parse
func entryTime(item *gofeed.Item) time.Time {
	switch {
	case item.UpdatedParsed != nil:
		return *item.UpdatedParsed
	case item.PublishedParsed != nil:
		return *item.PublishedParsed
	}

	return timeutil.ParseWithDefault(item.Updated, timeutil.ParseFlexibleTime(item.Published))
}
