// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"feedmerge-api/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case errors.IsValidation(err):
		return huma.Error400BadRequest(err.Error())
	case errors.IsNetwork(err), errors.IsMalformed(err):
		// Upstream feed could not be fetched or parsed and nothing was cached
		return huma.Error502BadGateway("Upstream feed unavailable", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
