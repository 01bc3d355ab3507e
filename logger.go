package lcsgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with lcsgo-specific context.
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

// WithSerial adds a classifier serial field to the logger.
func (l *Logger) WithSerial(serial uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("serial", serial),
	}
}

// WithCheckpoint adds a checkpoint name field to the logger.
func (l *Logger) WithCheckpoint(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("checkpoint", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSave logs a population save.
func (l *Logger) LogSave(ctx context.Context, name string, macros, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "population saved",
			"name", name,
			"macroclassifiers", macros,
			"bytes", bytes,
		)
	}
}

// LogOpen logs a population load.
func (l *Logger) LogOpen(ctx context.Context, name string, macros int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "population opened",
			"name", name,
			"macroclassifiers", macros,
		)
	}
}

// LogCompact logs a self-subsumption pass.
func (l *Logger) LogCompact(ctx context.Context, before, after, numerosity int) {
	l.DebugContext(ctx, "population compacted",
		"before", before,
		"after", after,
		"numerosity", numerosity,
	)
}

// LogCheckpoint logs a commit of the current checkpoint pointer.
func (l *Logger) LogCheckpoint(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "checkpoint commit failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "checkpoint committed",
			"name", name,
		)
	}
}
