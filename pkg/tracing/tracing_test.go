package tracing_test

import (
	"context"
	"errors"
	"forum/pkg/tracing"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestProvider_LogsFinishedSpans(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	tp := tracing.NewProvider(tracing.NewLogExporter(zap.New(core)), 1)

	_, span := tp.Tracer("test").Start(ctx, "posts.Get")
	span.SetAttributes(attribute.String("posts.id", "p-1"))
	span.RecordError(errors.New("post not found"))
	span.SetStatus(codes.Error, "post not found")
	span.End()

	require.NoError(t, tp.ForceFlush(ctx))
	require.NoError(t, tp.Shutdown(ctx))

	entries := logs.FilterMessage("span posts.Get").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	require.Equal(t, "Error", fields["status"])
	require.Equal(t, "post not found", fields["error"])
	require.Equal(t, "p-1", fields["posts.id"])
}

func TestProvider_ZeroRatioSamplesNothing(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	tp := tracing.NewProvider(tracing.NewLogExporter(zap.New(core)), 0)

	_, span := tp.Tracer("test").Start(ctx, "posts.List")
	require.False(t, span.SpanContext().IsSampled())
	span.End()

	require.NoError(t, tp.Shutdown(ctx))
	require.Zero(t, logs.Len())
}
