// Package metrics provides Prometheus metrics for wikibrief.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wikibrief"

var (
	// LookupsTotal counts pipeline invocations by outcome ("ok" or a failure reason).
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Total number of lookups by outcome",
		},
		[]string{"outcome"},
	)

	// UpstreamRequestsTotal counts outbound calls to the wiki APIs.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	// UpstreamDuration measures outbound call latency.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Duration of upstream requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// DegradedTotal counts components that returned their fallback value.
	DegradedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_total",
			Help:      "Total number of degraded component results",
		},
		[]string{"component"},
	)

	// EventsTotal counts lookup events written per sink.
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of lookup events written by sink and status",
		},
		[]string{"sink", "status"},
	)

	// EventsDropped counts events discarded because the dispatch queue was full.
	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Total number of lookup events dropped on a full queue",
		},
	)
)

// RecordLookup records a finished pipeline invocation.
func RecordLookup(outcome string) {
	LookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordUpstream records an outbound request. status is the HTTP status code
// as text, or "error" when no response was received.
func RecordUpstream(endpoint, status string, seconds float64) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	UpstreamDuration.WithLabelValues(endpoint).Observe(seconds)
}

// RecordDegraded records a component falling back to its default value.
func RecordDegraded(component string) {
	DegradedTotal.WithLabelValues(component).Inc()
}

// RecordEvent records the result of writing an event to a sink.
func RecordEvent(sink, status string) {
	EventsTotal.WithLabelValues(sink, status).Inc()
}

// RecordEventDropped records an event lost to backpressure.
func RecordEventDropped() {
	EventsDropped.Inc()
}
