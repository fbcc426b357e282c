// Package metrics holds the Prometheus collectors for RPCs and the activity feed.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sneakyelves"

// Metrics groups every collector the server exports.
type Metrics struct {
	gatherer prometheus.Gatherer

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec

	feedEvents      *prometheus.CounterVec
	feedRowsWritten prometheus.Counter
	feedRowsRevoked prometheus.Counter
	feedQueueDepth  prometheus.Gauge
}

// Feed event outcomes.
const (
	OutcomeDelivered = "delivered"
	OutcomeDropped   = "dropped"
	OutcomeFailed    = "failed"
	OutcomeRevoked   = "revoked"
)

// New creates the collectors on a fresh registry that also carries the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg)
}

// NewWithRegistry creates the collectors and registers them with reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Connect RPCs handled, by procedure and code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Connect RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		feedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "events_total",
			Help:      "Feed events by type and outcome.",
		}, []string{"type", "outcome"}),
		feedRowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "rows_written_total",
			Help:      "Feed rows written by fan-out.",
		}),
		feedRowsRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "rows_revoked_total",
			Help:      "Feed rows deleted by revocation.",
		}),
		feedQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "queue_depth",
			Help:      "Feed tasks waiting for a worker.",
		}),
	}
	reg.MustRegister(
		m.rpcRequests,
		m.rpcDuration,
		m.feedEvents,
		m.feedRowsWritten,
		m.feedRowsRevoked,
		m.feedQueueDepth,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// FeedEvent counts one feed event outcome.
func (m *Metrics) FeedEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	m.feedEvents.WithLabelValues(eventType, outcome).Inc()
}

// FeedRowsWritten adds n written feed rows.
func (m *Metrics) FeedRowsWritten(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.feedRowsWritten.Add(float64(n))
}

// FeedRowsRevoked adds n deleted feed rows.
func (m *Metrics) FeedRowsRevoked(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.feedRowsRevoked.Add(float64(n))
}

// FeedQueued moves the queue depth gauge by delta.
func (m *Metrics) FeedQueued(delta int) {
	if m == nil {
		return
	}
	m.feedQueueDepth.Add(float64(delta))
}
