package interfaces

// Logger defines the interface for logging throughout the application.
// Fields carry structured context such as the category or source URL.
//
// Example usage:
//
//	logger.Warn("Dropping source from category feed", map[string]interface{}{
//		"category": "comedy",
//		"source":   "https://example.com/feed.xml",
//		"error":    err.Error(),
//	})
type Logger interface {
	// Debug logs detailed troubleshooting information.
	Debug(msg string, fields map[string]interface{})

	// Info logs general operational messages.
	Info(msg string, fields map[string]interface{})

	// Warn logs degraded behavior that does not fail the current operation,
	// such as serving stale cache data or dropping a failing source.
	Warn(msg string, fields map[string]interface{})

	// Error logs failures that need attention.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. Used when no logger is configured.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
