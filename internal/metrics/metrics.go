// Package metrics holds the Prometheus collectors of the server.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Quote fetch results
const (
	QuoteOK          = "ok"
	QuoteError       = "error"
	QuoteBreakerOpen = "breaker_open"
)

// Metrics implements prometheus.Collector for the server's own series
type Metrics struct {
	grpcRequests *prometheus.CounterVec
	grpcLatency  *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	quoteFetches *prometheus.CounterVec
	quoteLatency prometheus.Histogram
	breakerState *prometheus.GaugeVec
}

// New creates the collectors under the given namespace
func New(namespace string) *Metrics {
	return &Metrics{
		grpcRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grpc_requests_total",
				Help:      "Total number of gRPC requests by method and status code",
			},
			[]string{"method", "code"},
		),
		grpcLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grpc_request_duration_seconds",
				Help:      "gRPC request latencies in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latencies in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		quoteFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quote_fetches_total",
				Help:      "Total number of price quote fetches by result",
			},
			[]string{"result"},
		),
		quoteLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "quote_fetch_duration_seconds",
				Help:      "Price quote fetch latencies in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}
}

// Describe implements prometheus.Collector
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.grpcRequests.Describe(ch)
	m.grpcLatency.Describe(ch)
	m.httpRequests.Describe(ch)
	m.httpLatency.Describe(ch)
	m.quoteFetches.Describe(ch)
	m.quoteLatency.Describe(ch)
	m.breakerState.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.grpcRequests.Collect(ch)
	m.grpcLatency.Collect(ch)
	m.httpRequests.Collect(ch)
	m.httpLatency.Collect(ch)
	m.quoteFetches.Collect(ch)
	m.quoteLatency.Collect(ch)
	m.breakerState.Collect(ch)
}

// ObserveGRPC records one finished gRPC call
func (m *Metrics) ObserveGRPC(method, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.grpcRequests.WithLabelValues(method, code).Inc()
	m.grpcLatency.WithLabelValues(method).Observe(d.Seconds())
}

// ObserveHTTP records one finished HTTP request
func (m *Metrics) ObserveHTTP(method, endpoint, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, endpoint, status).Inc()
	m.httpLatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// ObserveQuote records one price fetch
func (m *Metrics) ObserveQuote(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.quoteFetches.WithLabelValues(result).Inc()
	m.quoteLatency.Observe(d.Seconds())
}

// SetBreakerState records the state of a named circuit breaker
func (m *Metrics) SetBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(float64(state))
}
