// Package metrics holds shared instrument settings for the OpenTelemetry
// meters exported through Prometheus.
package metrics

// Namespace prefixes every instrument the service registers.
const Namespace = "forum"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Name returns the instrument name for a metric within Namespace.
func Name(metric string) string {
	return Namespace + "." + metric
}
