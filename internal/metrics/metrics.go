// SPDX-License-Identifier: MIT
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	gamesDiscovered = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "scoreticker_games_discovered",
		Help: "Number of games discovered per league (last refresh)",
	}, []string{"league"})

	gamesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scoreticker_games_total",
		Help: "Total number of games in the rotation (last refresh)",
	})

	parseErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoreticker_parse_errors_total",
		Help: "Scoreboard events skipped due to parse failures, per league",
	}, []string{"league"})

	// Upstream metrics
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoreticker_upstream_requests_total",
		Help: "Upstream scoreboard requests per league by outcome",
	}, []string{"league", "outcome"}) // outcome=success|failure

	fetchDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scoreticker_fetch_duration_seconds",
		Help:    "Time spent fetching and parsing one league scoreboard",
		Buckets: prometheus.DefBuckets,
	}, []string{"league"})

	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "scoreticker_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	}, []string{"name"})

	// Refresh metrics
	refreshFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoreticker_refresh_failures_total",
		Help: "Total number of refresh failures by stage",
	}, []string{"stage"}) // stage=config|fetch|snapshot|history

	lastRefreshTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scoreticker_last_refresh_timestamp_seconds",
		Help: "Unix time of the last successful refresh",
	})

	// Display metrics
	framesRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoreticker_frames_rendered_total",
		Help: "Total number of game cards rendered",
	})

	displayErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoreticker_display_errors_total",
		Help: "Frame delivery failures per display driver",
	}, []string{"driver"})

	// Cache metrics
	cacheOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoreticker_cache_ops_total",
		Help: "Scoreboard response cache operations by outcome",
	}, []string{"outcome"}) // outcome=hit|miss

	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoreticker_http_requests_total",
		Help: "API requests by method, route and status code",
	}, []string{"method", "route", "status"})

	httpDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scoreticker_http_request_duration_seconds",
		Help:    "API request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// Logo metrics
	logoFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoreticker_logo_fetch_total",
		Help: "Team logo fetch attempts by outcome",
	}, []string{"outcome"}) // outcome=local|cached|fetched|failure
)

func RecordGamesCount(league string, n int) {
	gamesDiscovered.WithLabelValues(league).Set(float64(n))
}

func RecordGamesTotal(n int) { gamesTotal.Set(float64(n)) }

func IncParseError(league string) { parseErrorsTotal.WithLabelValues(league).Inc() }

func IncUpstreamRequest(league, outcome string) {
	upstreamRequestsTotal.WithLabelValues(league, outcome).Inc()
}

func ObserveFetchDuration(league string, seconds float64) {
	fetchDurationSeconds.WithLabelValues(league).Observe(seconds)
}

// SetCircuitBreakerState records a breaker state transition.
func SetCircuitBreakerState(name, state string) {
	var v float64
	switch state {
	case "half-open":
		v = 1
	case "open":
		v = 2
	}
	circuitBreakerState.WithLabelValues(name).Set(v)
}

func IncRefreshFailure(stage string) { refreshFailuresTotal.WithLabelValues(stage).Inc() }

func SetLastRefreshTimestamp(unix float64) { lastRefreshTimestamp.Set(unix) }

func IncFramesRendered() { framesRenderedTotal.Inc() }

func IncDisplayError(driver string) { displayErrorsTotal.WithLabelValues(driver).Inc() }

func IncCacheOp(outcome string) { cacheOpsTotal.WithLabelValues(outcome).Inc() }

func IncLogoFetch(outcome string) { logoFetchTotal.WithLabelValues(outcome).Inc() }

func ObserveHTTPRequest(method, route string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDurationSeconds.WithLabelValues(route).Observe(seconds)
}
