package metrics_test

import (
	"forum/pkg/metrics"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	require.Equal(t, "forum.http.requests", metrics.Name("http.requests"))
}

func TestDefaultBucketsAscending(t *testing.T) {
	require.True(t, slices.IsSorted(metrics.DefaultBuckets))
}
