// ABOUTME: Custom error types for the core business logic
// ABOUTME: Classifies failures so callers can decide between degrading and surfacing them

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NetworkError represents a transport or HTTP-level failure while fetching a URL.
// StatusCode is zero when no response was received.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s failed", e.URL)
}

// Unwrap returns the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedError represents content that could not be parsed into a feed
type MalformedError struct {
	Format string
	Err    error
}

// Error implements the error interface
func (e *MalformedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed %s content", e.Format)
	}
	return fmt.Sprintf("malformed %s content: %v", e.Format, e.Err)
}

// Unwrap returns the underlying parser error
func (e *MalformedError) Unwrap() error {
	return e.Err
}

// InvalidConfigError represents a configuration value rejected at startup
type InvalidConfigError struct {
	Category string
	Value    string
	Err      error
}

// Error implements the error interface
func (e *InvalidConfigError) Error() string {
	msg := fmt.Sprintf("invalid configuration for category %q", e.Category)
	if e.Value != "" {
		msg += fmt.Sprintf(": url %q", e.Value)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsNetwork checks if an error is a NetworkError
func IsNetwork(err error) bool {
	var networkErr *NetworkError
	return errors.As(err, &networkErr)
}

// IsMalformed checks if an error is a MalformedError
func IsMalformed(err error) bool {
	var malformedErr *MalformedError
	return errors.As(err, &malformedErr)
}

// IsInvalidConfig checks if an error is an InvalidConfigError
func IsInvalidConfig(err error) bool {
	var configErr *InvalidConfigError
	return errors.As(err, &configErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
