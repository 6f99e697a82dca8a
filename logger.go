package edgeprop

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with edgeprop-specific helpers.
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

// LogGraphCreate logs a graph construction.
func (l *Logger) LogGraphCreate(ctx context.Context, vertices int32, edges int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "graph creation failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "graph creation completed",
		"vertices", vertices,
		"edges", edges,
		"duration", duration,
	)
}

// LogWalk logs a random walk run.
func (l *Logger) LogWalk(ctx context.Context, kind string, walkers, maxDepth int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "random walks failed",
			"kind", kind,
			"walkers", walkers,
			"max_depth", maxDepth,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "random walks completed",
		"kind", kind,
		"walkers", walkers,
		"max_depth", maxDepth,
		"duration", duration,
	)
}
