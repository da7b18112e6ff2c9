package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
)

// Structured logging keys shared by every package.
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldCategoryID    = "category_id"
	FieldKey           = "key"
	FieldRevision      = "revision"
	FieldError         = "error"
)

// Fields represents structured logging fields.
type Fields map[string]any

// ParseLevel converts a config string to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, level)
	}
}

// NewHandler builds a slog handler for the given format.
func NewHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "console", "":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalidConfig, format)
	}
}

// SetupLogger configures the global logger with appropriate settings.
func SetupLogger(level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	handler, err := NewHandler(os.Stderr, lvl, format)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// DiscardLogger returns a logger that drops everything. Handy in tests.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LogError logs an error with additional context.
func LogError(ctx context.Context, logger *slog.Logger, err error, msg string, fields Fields) {
	attrs := make([]slog.Attr, 0, len(fields)+1)
	attrs = append(attrs, slog.String(FieldError, err.Error()))
	attrs = appendFields(attrs, fields)

	logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// LogInfo logs an info message with fields.
func LogInfo(ctx context.Context, logger *slog.Logger, msg string, fields Fields) {
	attrs := appendFields(make([]slog.Attr, 0, len(fields)), fields)

	logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// appendFields adds fields in key order so log lines are stable.
func appendFields(attrs []slog.Attr, fields Fields) []slog.Attr {
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}
