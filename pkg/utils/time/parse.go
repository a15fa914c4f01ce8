// ABOUTME: Lenient timestamp parsing for feed dates that gofeed could not parse
// ABOUTME: Zone-less layouts are interpreted as UTC

package time

import (
	"strings"
	"time"
)

// layouts seen in the wild, most specific first
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexibleTime parses s with the first matching layout.
// It returns the zero time when nothing matches.
func ParseFlexibleTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseWithDefault parses s, returning fallback when it cannot be parsed
func ParseWithDefault(s string, fallback time.Time) time.Time {
	if parsed := ParseFlexibleTime(s); !parsed.IsZero() {
		return parsed
	}
	return fallback
}
