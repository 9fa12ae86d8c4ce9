package matchgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with matchgo-specific context.
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

// LogBuild logs a rule-set compilation.
func (l *Logger) LogBuild(ctx context.Context, rules int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"rules", rules,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "build completed",
			"rules", rules,
			"duration", duration,
		)
	}
}

// LogClassify logs a classification.
func (l *Logger) LogClassify(ctx context.Context, matched bool, ruleID int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "classify failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "classify completed",
			"matched", matched,
			"rule", ruleID,
		)
	}
}

// LogSwap logs a classifier hot swap performed by a Loader.
func (l *Logger) LogSwap(ctx context.Context, name string, rules int) {
	l.InfoContext(ctx, "classifier swapped",
		"snapshot", name,
		"rules", rules,
	)
}
