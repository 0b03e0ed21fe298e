// Package logger provides a structured logging facility using zap logger.
// It offers context-aware logging, environment-specific configuration and
// helper functions for different log levels. Setup also routes the standard
// library's slog default through the same zap core so library output ends up
// in one stream.
package logger

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment configures a verbose, human-readable logger.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment configures a JSON logger at info level.
	ProductionEnvironment = "production"
)

// defaultLogger is the package-level logger instance used when no logger is found in context.
var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Setup initializes the default logger based on the environment and installs
// a slog default backed by it.
func Setup(environment string) {
	if environment == ProductionEnvironment {
		defaultLogger, _ = zap.NewProduction()
	} else {
		defaultLogger, _ = zap.NewDevelopment()
	}

	slog.SetDefault(Slog(context.Background()))
}

// key is a custom type used as a context key for storing and retrieving logger instances.
type key struct{}

// Get retrieves a logger from the provided context.
// If no logger is found in the context, it returns the default logger.
func Get(ctx context.Context) *zap.Logger {
	if logger, _ := ctx.Value(key{}).(*zap.Logger); logger != nil {
		return logger
	}

	return defaultLogger
}

// Slog returns a slog.Logger writing to the context's zap core.
func Slog(ctx context.Context) *slog.Logger {
	return slog.New(zapslog.NewHandler(Get(ctx).Core()))
}

// WithLogger creates a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// WithFields creates a new context with a logger that includes the specified fields.
// This is useful for adding structured data to all log messages within a context.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// IsDebug checks if the logger in the context is configured at debug level.
func IsDebug(ctx context.Context) bool {
	return Get(ctx).Level() == zap.DebugLevel
}

// Debug logs a message at debug level with the given fields.
func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

// Info logs a message at info level with the given fields.
func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

// Warn logs a message at warn level with the given fields.
func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

// Error logs a message at error level with the given fields.
func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

// Fatal logs a message at fatal level with the given fields.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
