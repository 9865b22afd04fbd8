package clusterq

import (
	"context"
	"log/slog"
	"os"

	"github.com/bgcdb/clusterq/query"
)

// Logger wraps slog.Logger with search-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithSearchType adds a search type field to the logger.
func (l *Logger) WithSearchType(st query.SearchType) *Logger {
	return &Logger{
		Logger: l.Logger.With("search_type", string(st)),
	}
}

// WithQuery adds the canonical query text to the logger.
func (l *Logger) WithQuery(q string) *Logger {
	return &Logger{
		Logger: l.Logger.With("query", q),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogParse logs a parse of free text or JSON input.
func (l *Logger) LogParse(ctx context.Context, input string, err error) {
	if err != nil {
		l.WarnContext(ctx, "parse failed",
			"input", input,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "parse completed",
			"input", input,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, st query.SearchType, q string, total int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"search_type", string(st),
			"query", q,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"search_type", string(st),
			"query", q,
			"results", total,
		)
	}
}

// LogLoad logs a dataset load.
func (l *Logger) LogLoad(ctx context.Context, prefix string, regions int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"prefix", prefix,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"prefix", prefix,
			"regions", regions,
		)
	}
}
