package logger_test

import (
	"context"
	"forum/pkg/logger"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return logger.WithLogger(context.Background(), zap.New(core)), logs
}

func TestSetup(t *testing.T) {
	for _, env := range []string{logger.DevelopmentEnvironment, logger.ProductionEnvironment} {
		t.Run(env, func(t *testing.T) {
			require.NotPanics(t, func() { logger.Setup(env) })
			require.NotNil(t, logger.Get(context.Background()))
		})
	}

	logger.Setup(logger.ProductionEnvironment)
	require.False(t, logger.IsDebug(context.Background()), "production logger logs from info up")

	logger.Setup(logger.DevelopmentEnvironment)
	require.True(t, logger.IsDebug(context.Background()), "development logger logs debug")
}

func TestGet_PrefersContextLogger(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	require.NotNil(t, logger.Get(context.Background()))

	custom := zap.NewNop()
	require.Same(t, custom, logger.Get(logger.WithLogger(context.Background(), custom)))
}

func TestWithFields_AreAttachedToEveryEntry(t *testing.T) {
	ctx, logs := observed(zap.DebugLevel)
	ctx = logger.WithFields(ctx, zap.String("RequestID", "req-1"))
	ctx = logger.WithFields(ctx, zap.String("UserID", "u-1"))

	logger.Info(ctx, "post created", zap.Int("comments", 0))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, map[string]any{
		"RequestID": "req-1",
		"UserID":    "u-1",
		"comments":  int64(0),
	}, entries[0].ContextMap())
}

func TestLevels(t *testing.T) {
	ctx, logs := observed(zap.InfoLevel)

	logger.Debug(ctx, "hidden")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, zap.InfoLevel, entries[0].Level)
	require.Equal(t, zap.WarnLevel, entries[1].Level)
	require.Equal(t, zap.ErrorLevel, entries[2].Level)
	require.False(t, logger.IsDebug(ctx))
}

func TestSlog_WritesToContextCore(t *testing.T) {
	ctx, logs := observed(zap.DebugLevel)

	logger.Slog(ctx).Info("migrated", slog.Int("version", 1))

	entries := logs.FilterMessage("migrated").All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(1), entries[0].ContextMap()["version"])
}

func TestSetupInstallsSlogDefault(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	require.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug),
		"slog default should follow the development logger level")
}
