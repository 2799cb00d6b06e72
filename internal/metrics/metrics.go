// Package metrics holds the prometheus collectors for the flat API and the
// engine. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ctp"

// Metrics is the set of collectors exposed on /metrics.
type Metrics struct {
	Requests   *prometheus.CounterVec
	Callbacks  *prometheus.CounterVec
	Handles    *prometheus.GaugeVec
	Pending    prometheus.Gauge
	Timeouts   prometheus.Counter
	RspLatency prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Flat API request submissions by operation and outcome.",
			},
			[]string{"op", "outcome"}, // outcome: ok/null_handle/unsupported/panic/vendor_error
		),
		Callbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "callbacks_total",
				Help:      "SPI events observed through a bridge table.",
			},
			[]string{"side", "event"},
		),
		Handles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "live_handles",
				Help:      "Live handles by kind.",
			},
			[]string{"kind"},
		),
		Pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_requests",
			Help:      "Requests waiting for their final response.",
		}),
		Timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_timeouts_total",
			Help:      "Requests expired without a final response.",
		}),
		RspLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "response_latency_seconds",
			Help:      "Time from submission to the final response.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms -> ~4s
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Callbacks, m.Handles, m.Pending, m.Timeouts, m.RspLatency)
	}
	return m
}

// Outcome labels for Request.
const (
	OutcomeOK          = "ok"
	OutcomeNullHandle  = "null_handle"
	OutcomeUnsupported = "unsupported"
	OutcomePanic       = "panic"
	OutcomeVendorError = "vendor_error"
)

func (m *Metrics) Request(op, outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) Callback(side, event string) {
	if m == nil {
		return
	}
	m.Callbacks.WithLabelValues(side, event).Inc()
}

func (m *Metrics) SetHandles(kind string, n int) {
	if m == nil {
		return
	}
	m.Handles.WithLabelValues(kind).Set(float64(n))
}

func (m *Metrics) SetPending(n int) {
	if m == nil {
		return
	}
	m.Pending.Set(float64(n))
}

func (m *Metrics) Timeout() {
	if m == nil {
		return
	}
	m.Timeouts.Inc()
}

func (m *Metrics) ObserveLatency(seconds float64) {
	if m == nil {
		return
	}
	m.RspLatency.Observe(seconds)
}
