// Package logger provides a standardized logging approach for rosterwatch
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger levels
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// New creates a new structured logger with the given options
func New(opts ...Option) *slog.Logger {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	handlerOpts := &slog.HandlerOptions{
		Level: config.level,
	}

	var handler slog.Handler
	switch config.format {
	case FormatText:
		handler = slog.NewTextHandler(config.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(config.output, handlerOpts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// config holds the logger configuration
type config struct {
	level  slog.Level
	format string
	output io.Writer
}

func defaultConfig() *config {
	return &config{
		level:  LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// Option configures the logger
type Option func(*config)

// WithLevel sets the minimum log level
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithFormat sets the handler format (json or text)
func WithFormat(format string) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithOutput sets the output writer
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}
