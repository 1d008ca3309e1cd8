package vectordb

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with store-specific helpers so every
// operation logs consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a default text handler to stderr.
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
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogAdd logs a document insertion.
func (l *Logger) LogAdd(ctx context.Context, namespace, id string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add document failed",
			"namespace", namespace,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "document added",
			"namespace", namespace,
			"id", id,
		)
	}
}

// LogBatchAdd logs a batch insertion.
func (l *Logger) LogBatchAdd(ctx context.Context, namespace string, added, total int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch add stopped early",
			"namespace", namespace,
			"added", added,
			"total", total,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch add completed",
			"namespace", namespace,
			"count", total,
		)
	}
}

// LogUpdate logs a document update.
func (l *Logger) LogUpdate(ctx context.Context, namespace, id string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "update document failed",
			"namespace", namespace,
			"id", id,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "document updated",
			"namespace", namespace,
			"id", id,
		)
	}
}

// LogDelete logs a document deletion.
func (l *Logger) LogDelete(ctx context.Context, namespace, id string, removed bool) {
	l.DebugContext(ctx, "document delete",
		"namespace", namespace,
		"id", id,
		"removed", removed,
	)
}

// LogEvict logs a capacity eviction.
func (l *Logger) LogEvict(ctx context.Context, namespace, id string) {
	l.DebugContext(ctx, "document evicted",
		"namespace", namespace,
		"id", id,
	)
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, namespace string, limit, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"namespace", namespace,
			"limit", limit,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"namespace", namespace,
			"limit", limit,
			"results", results,
		)
	}
}

// LogSave logs a snapshot save.
func (l *Logger) LogSave(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot saved",
			"name", name,
		)
	}
}

// LogLoad logs a snapshot load.
func (l *Logger) LogLoad(ctx context.Context, name string, namespaces int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot loaded",
			"name", name,
			"namespaces", namespaces,
		)
	}
}
