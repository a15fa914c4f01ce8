package handlers

import (
	"context"
	"net/http"

	"feedmerge-api/api/dto/responses"
	"feedmerge-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
)

// HealthHandler reports liveness
type HealthHandler struct {
	provider interfaces.FeedProvider
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(provider interfaces.FeedProvider) *HealthHandler {
	return &HealthHandler{provider: provider}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, h.Health)
}

// HealthOutput is the health response
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /health. It never touches upstream feeds.
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: responses.HealthResponse{
		Status:     "ok",
		Categories: len(h.provider.Categories()),
	}}, nil
}
