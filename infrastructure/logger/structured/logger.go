// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Adapts the core Logger interface to leveled, field-based logrus output

package structured

import (
	"fmt"
	"io"
	"os"

	"feedmerge-api/core/interfaces"
	"github.com/sirupsen/logrus"
)

// Config selects the level and output format of the logger
type Config struct {
	// Level is one of debug, info, warn or error
	Level string

	// Format is text or json
	Format string

	// Output defaults to stdout
	Output io.Writer
}

// Logger implements interfaces.Logger using logrus
type Logger struct {
	entry *logrus.Entry
}

var _ interfaces.Logger = (*Logger)(nil)

// New creates a logger from cfg
func New(cfg Config) (*Logger, error) {
	base := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	base.SetLevel(level)

	switch cfg.Format {
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if cfg.Output != nil {
		base.SetOutput(cfg.Output)
	} else {
		base.SetOutput(os.Stdout)
	}

	return &Logger{entry: logrus.NewEntry(base)}, nil
}

// With returns a child logger that adds fields to every entry
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}
