// ABOUTME: Feed domain model represents an RSS/Atom feed in a format-neutral shape
// ABOUTME: Feeds and entries are value objects that are never mutated after construction

package domain

import (
	"time"
)

// Entry is a single item (post, article, video) within a Feed
type Entry struct {
	// Title is the human-readable entry title
	Title string

	// Link is the URL the entry points to
	Link string

	// ID is the stable identifier of the entry, distinct from Link
	ID string

	// Updated is when the entry was last updated
	Updated time.Time

	// Summary is a plain-text summary of the entry
	Summary string
}

// Feed is feed metadata plus an ordered list of entries from one source,
// or the merged result of several sources.
type Feed struct {
	// Title is the human-readable title of the feed
	Title string

	// Link is the canonical (self) URL of the feed
	Link string

	// AuthorName is the name of the feed author
	AuthorName string

	// ID is the unique identifier for the feed
	ID string

	// Entries contains the feed entries in feed order
	Entries []Entry
}

// EntryCount returns the number of entries, treating a nil feed as empty
func (f *Feed) EntryCount() int {
	if f == nil {
		return 0
	}
	return len(f.Entries)
}
