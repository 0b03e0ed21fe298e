package v1handler

import (
	"fmt"
	"forum/pkg/metrics"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "forum/internal/api/handler/v1handler"

// Metrics returns a middleware recording request count and latency per route.
func Metrics(mp metric.MeterProvider) (gin.HandlerFunc, error) {
	meter := mp.Meter(meterName)

	requests, err := meter.Int64Counter(metrics.Name("http.requests"),
		metric.WithDescription("Number of handled v1 requests"))
	if err != nil {
		return nil, fmt.Errorf("could not create request counter: %w", err)
	}

	latency, err := meter.Float64Histogram(metrics.Name("http.request.duration"),
		metric.WithDescription("Latency of v1 requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create latency histogram: %w", err)
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("http.status_code", strconv.Itoa(c.Writer.Status())),
		)

		ctx := c.Request.Context()
		requests.Add(ctx, 1, attrs)
		latency.Record(ctx, time.Since(start).Seconds(), attrs)
	}, nil
}
