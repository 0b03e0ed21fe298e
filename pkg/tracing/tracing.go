// Package tracing builds the OpenTelemetry tracer provider used by the
// services. Finished spans are written to the structured log at debug level,
// so a request's spans can be followed by trace_id next to its access log.
package tracing

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// NewProvider returns a tracer provider sampling sampleRatio of new traces
// (children follow their parent) and batching finished spans into exporter.
func NewProvider(exporter sdktrace.SpanExporter, sampleRatio float64) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
		sdktrace.WithBatcher(exporter),
	)
}

// LogExporter is a span exporter writing one debug entry per span.
type LogExporter struct {
	log *zap.Logger
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)

func NewLogExporter(log *zap.Logger) *LogExporter {
	return &LogExporter{log: log}
}

func (e *LogExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		sc := span.SpanContext()
		fields := []zap.Field{
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
			zap.Duration("duration", span.EndTime().Sub(span.StartTime())),
			zap.String("status", span.Status().Code.String()),
		}
		if desc := span.Status().Description; desc != "" {
			fields = append(fields, zap.String("error", desc))
		}
		for _, kv := range span.Attributes() {
			fields = append(fields, zap.String(string(kv.Key), kv.Value.Emit()))
		}

		e.log.Debug("span "+span.Name(), fields...)
	}

	return nil
}

func (e *LogExporter) Shutdown(context.Context) error {
	_ = e.log.Sync()

	return nil
}
