// ABOUTME: Category feed handlers for the Huma API
// ABOUTME: Serves merged category feeds as Atom or JSON and proxies configured sources

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"feedmerge-api/api/dto/mappers"
	"feedmerge-api/api/dto/responses"
	"feedmerge-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
)

const (
	cacheHit  = "HIT"
	cacheMiss = "MISS"
)

// CategoryHandler handles category feed requests
type CategoryHandler struct {
	provider interfaces.FeedProvider
	cache    interfaces.Cache
	cacheTTL time.Duration
	logger   interfaces.Logger
	now      func() time.Time
}

// NewCategoryHandler creates a new category handler. A nil cache disables
// caching of rendered documents.
func NewCategoryHandler(provider interfaces.FeedProvider, cache interfaces.Cache, cacheTTL time.Duration, logger interfaces.Logger) *CategoryHandler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	return &CategoryHandler{
		provider: provider,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getCategoryAtom",
		Method:      http.MethodGet,
		Path:        "/feeds/{name}/atom.xml",
		Summary:     "Merged category feed (Atom)",
		Description: "Fetches every source of the category, drops failing ones and returns the merged feed as Atom 1.0",
		Tags:        []string{"Feeds"},
	}, h.GetCategoryAtom)

	huma.Register(api, huma.Operation{
		OperationID: "getCategoryJSON",
		Method:      http.MethodGet,
		Path:        "/feeds/{name}/feed.json",
		Summary:     "Merged category feed (JSON)",
		Description: "Same merged feed as the Atom endpoint, encoded as JSON",
		Tags:        []string{"Feeds"},
	}, h.GetCategoryJSON)

	huma.Register(api, huma.Operation{
		OperationID: "getSourceAtom",
		Method:      http.MethodGet,
		Path:        "/feeds/source",
		Summary:     "Single configured source (Atom)",
		Description: "Returns one configured source feed, fetched through the cache, as Atom 1.0",
		Tags:        []string{"Feeds"},
	}, h.GetSourceAtom)

	huma.Register(api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/categories",
		Summary:     "List categories",
		Description: "Lists configured categories sorted by name",
		Tags:        []string{"Categories"},
	}, h.ListCategories)
}

// CategoryInput identifies a category by name
type CategoryInput struct {
	Name string `path:"name" maxLength:"256" doc:"Category name"`
}

// AtomOutput is a serialized Atom document
type AtomOutput struct {
	ContentType string `header:"Content-Type"`
	CacheStatus string `header:"X-Cache"`
	Body        []byte
}

// GetCategoryAtom handles GET /feeds/{name}/atom.xml
func (h *CategoryHandler) GetCategoryAtom(ctx context.Context, input *CategoryInput) (*AtomOutput, error) {
	key := "atom:category:" + input.Name

	if body, ok := h.cached(ctx, key); ok {
		return &AtomOutput{ContentType: responses.AtomContentType, CacheStatus: cacheHit, Body: body}, nil
	}

	feed, err := h.provider.FeedByCategory(ctx, input.Name)
	if err != nil {
		return nil, toHumaError(err)
	}

	body, err := mappers.RenderAtom(feed, h.now())
	if err != nil {
		return nil, toHumaError(err)
	}

	h.store(ctx, key, body)
	return &AtomOutput{ContentType: responses.AtomContentType, CacheStatus: cacheMiss, Body: body}, nil
}

// FeedOutput is a JSON feed
type FeedOutput struct {
	Body responses.FeedResponse
}

// GetCategoryJSON handles GET /feeds/{name}/feed.json
func (h *CategoryHandler) GetCategoryJSON(ctx context.Context, input *CategoryInput) (*FeedOutput, error) {
	feed, err := h.provider.FeedByCategory(ctx, input.Name)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &FeedOutput{Body: *mappers.ToFeedResponse(feed)}, nil
}

// SourceInput identifies a configured source by URL
type SourceInput struct {
	URL string `query:"url" required:"true" doc:"Source feed URL; must be configured in some category"`
}

// GetSourceAtom handles GET /feeds/source
func (h *CategoryHandler) GetSourceAtom(ctx context.Context, input *SourceInput) (*AtomOutput, error) {
	feed, err := h.provider.FeedBySource(ctx, input.URL)
	if err != nil {
		return nil, toHumaError(err)
	}

	body, err := mappers.RenderAtom(feed, h.now())
	if err != nil {
		return nil, toHumaError(err)
	}

	return &AtomOutput{ContentType: responses.AtomContentType, CacheStatus: cacheMiss, Body: body}, nil
}

// CategoriesOutput lists configured categories
type CategoriesOutput struct {
	Body responses.CategoriesResponse
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(ctx context.Context, input *struct{}) (*CategoriesOutput, error) {
	response := mappers.ToCategoriesResponse(h.provider.Categories(), h.provider.CategoryLink)
	return &CategoriesOutput{Body: *response}, nil
}

// cached returns a rendered document; cache failures are treated as misses
func (h *CategoryHandler) cached(ctx context.Context, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}

	body, err := h.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			h.logger.Warn("Failed to read rendered feed from cache", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}
	return body, true
}

func (h *CategoryHandler) store(ctx context.Context, key string, body []byte) {
	if h.cache == nil {
		return
	}

	if err := h.cache.Set(ctx, key, body, h.cacheTTL); err != nil {
		h.logger.Warn("Failed to store rendered feed in cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
