// SPDX-License-Identifier: MIT
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerStateMapping(t *testing.T) {
	SetCircuitBreakerState("espn", "closed")
	assert.Equal(t, 0.0, testutil.ToFloat64(circuitBreakerState.WithLabelValues("espn")))

	SetCircuitBreakerState("espn", "half-open")
	assert.Equal(t, 1.0, testutil.ToFloat64(circuitBreakerState.WithLabelValues("espn")))

	SetCircuitBreakerState("espn", "open")
	assert.Equal(t, 2.0, testutil.ToFloat64(circuitBreakerState.WithLabelValues("espn")))
}

func TestGamesCounters(t *testing.T) {
	RecordGamesCount("nhl", 7)
	assert.Equal(t, 7.0, testutil.ToFloat64(gamesDiscovered.WithLabelValues("nhl")))

	before := testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues("nhl", "success"))
	IncUpstreamRequest("nhl", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues("nhl", "success")))
}

func TestFetchDurationHistogram(t *testing.T) {
	ObserveFetchDuration("mlb", 0.25)

	m := &dto.Metric{}
	h, err := fetchDurationSeconds.GetMetricWithLabelValues("mlb")
	require.NoError(t, err)
	require.NoError(t, h.(interface{ Write(*dto.Metric) error }).Write(m))
	require.NotNil(t, m.Histogram)
	assert.GreaterOrEqual(t, m.Histogram.GetSampleCount(), uint64(1))
}
