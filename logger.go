package facetgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with facetgo-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithFacet adds a facet name field to the logger.
func (l *Logger) WithFacet(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("facet", name),
	}
}

// WithShard adds a shard field to the logger.
func (l *Logger) WithShard(shard int) *Logger {
	return &Logger{
		Logger: l.Logger.With("shard", shard),
	}
}

// WithRequestID adds a request correlation id field to the logger.
func (l *Logger) WithRequestID(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("request_id", id),
	}
}

// LogFacet logs one facet execution.
func (l *Logger) LogFacet(ctx context.Context, name string, entries, missing int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "facet failed",
			"facet", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "facet completed",
			"facet", name,
			"entries", entries,
			"missing", missing,
			"duration", duration,
		)
	}
}

// LogShards logs a shard fan-out run.
func (l *Logger) LogShards(ctx context.Context, shards int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "shard fan-out failed",
			"shards", shards,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "shard fan-out completed",
			"shards", shards,
			"duration", duration,
		)
	}
}

// LogShip logs the framing of a finalized facet for the coordinator.
func (l *Logger) LogShip(ctx context.Context, requestID uint64, frameBytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ship failed",
			"request_id", requestID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "facet shipped",
			"request_id", requestID,
			"frame_bytes", frameBytes,
		)
	}
}
