// ABOUTME: Huma API server configuration and setup
// ABOUTME: Mounts CORS, request logging and rate limiting in front of the feed endpoints

package api

import (
	"net/http"

	"feedmerge-api/api/middleware"
	"feedmerge-api/core/interfaces"
	"feedmerge-api/pkg/requestid"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	title       = "Feedmerge API"
	version     = "1.0.0"
	description = "Merges the RSS and Atom sources of each configured category into a single Atom feed"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger            interfaces.Logger
	RequestsPerMinute int // zero disables rate limiting
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS must run first so preflight requests are never rate limited
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestid.Header},
		ExposedHeaders: []string{requestid.Header, "X-Cache", "X-RateLimit-Limit", "Retry-After"},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RequestsPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RequestsPerMinute)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	config := huma.DefaultConfig(title, version)
	config.Info.Description = description

	// OpenAPI document at /openapi.json, docs UI at /docs
	api := humachi.New(router, config)

	return api, router
}
