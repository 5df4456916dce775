package annrecall

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with annrecall-specific context.
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

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithMetric adds a metric field to the logger.
func (l *Logger) WithMetric(metric string) *Logger {
	return &Logger{
		Logger: l.Logger.With("metric", metric),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogGroundTruth logs a ground-truth computation.
func (l *Logger) LogGroundTruth(ctx context.Context, queries, training, k int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ground truth failed",
			"queries", queries,
			"training", training,
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "ground truth computed",
			"queries", queries,
			"training", training,
			"k", k,
		)
	}
}

// LogEvaluate logs a recall evaluation.
func (l *Logger) LogEvaluate(ctx context.Context, queries int, mean float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "evaluation failed",
			"queries", queries,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "evaluation completed",
			"queries", queries,
			"mean_recall", mean,
		)
	}
}
