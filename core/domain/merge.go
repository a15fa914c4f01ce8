package domain

import (
	"sort"
	"strings"
)

// TitleSeparator joins source titles in a merged feed title
const TitleSeparator = " + "

// UnknownAuthor is the author name given to merged feeds
const UnknownAuthor = "Unknown"

// MergeFeeds combines feeds into a new Feed identified by id and link.
// Entries are concatenated in input order and then stably sorted by Updated,
// latest first, so equal timestamps keep their input position. The inputs are
// not modified.
func MergeFeeds(id, link string, feeds []*Feed) *Feed {
	titles := make([]string, 0, len(feeds))
	total := 0
	for _, f := range feeds {
		if f == nil {
			continue
		}
		titles = append(titles, f.Title)
		total += len(f.Entries)
	}

	entries := make([]Entry, 0, total)
	for _, f := range feeds {
		if f == nil {
			continue
		}
		entries = append(entries, f.Entries...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Updated.After(entries[j].Updated)
	})

	return &Feed{
		Title:      strings.Join(titles, TitleSeparator),
		Link:       link,
		AuthorName: UnknownAuthor,
		ID:         id,
		Entries:    entries,
	}
}
