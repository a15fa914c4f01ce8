// ABOUTME: Category domain model groups configured source URLs under a name
// ABOUTME: Categories are validated once at startup and read-only afterwards

package domain

import (
	"errors"
	"fmt"
	"net/url"
	"sort"

	coreerrors "feedmerge-api/core/errors"
)

// Category is a named, ordered set of feed source URLs merged into one feed
type Category struct {
	name    string
	sources []string
}

// NewCategory validates every source URL and builds a Category.
// The first URL that does not parse as an absolute http(s) URL fails the
// whole construction with an InvalidConfigError naming the category and URL.
func NewCategory(name string, sources []string) (*Category, error) {
	if name == "" {
		return nil, &coreerrors.InvalidConfigError{Err: errors.New("category name cannot be empty")}
	}

	normalized := make([]string, 0, len(sources))
	for _, raw := range sources {
		u, err := ParseSourceURL(raw)
		if err != nil {
			return nil, &coreerrors.InvalidConfigError{Category: name, Value: raw, Err: err}
		}
		normalized = append(normalized, u.String())
	}

	return &Category{name: name, sources: normalized}, nil
}

// NewCategories builds every configured category, failing atomically if any
// category or URL is invalid. Categories are validated in name order so the
// reported error is deterministic.
func NewCategories(config map[string][]string) (map[string]*Category, error) {
	names := make([]string, 0, len(config))
	for name := range config {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make(map[string]*Category, len(config))
	for _, name := range names {
		category, err := NewCategory(name, config[name])
		if err != nil {
			return nil, err
		}
		categories[name] = category
	}
	return categories, nil
}

// ParseSourceURL parses a feed source URL, requiring an http or https scheme and a host
func ParseSourceURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}
	return u, nil
}

// Name returns the category name
func (c *Category) Name() string {
	return c.name
}

// Sources returns a copy of the configured source URLs in configured order
func (c *Category) Sources() []string {
	out := make([]string, len(c.sources))
	copy(out, c.sources)
	return out
}

// HasSource reports whether the normalized URL is one of the category's sources
func (c *Category) HasSource(source string) bool {
	for _, s := range c.sources {
		if s == source {
			return true
		}
	}
	return false
}
