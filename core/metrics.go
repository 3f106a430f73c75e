package core

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "goicmp"

// Metrics exports ping results as prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	requests prometheus.Counter
	replies  prometheus.Counter
	failures *prometheus.CounterVec
	rtt      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg, if not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "echo_requests_total",
			Help:      "Number of pings attempted.",
		}),
		replies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "echo_replies_total",
			Help:      "Number of matching echo replies received.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ping_failures_total",
			Help:      "Number of failed pings by reason.",
		}, []string{"reason"}),
		rtt: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "round_trip_seconds",
			Help:      "Round trip time of successful pings.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.replies, m.failures, m.rtt)
	}
	return m
}

// Observe records one ping result.
func (m *Metrics) Observe(res PingResult) {
	if m == nil {
		return
	}

	switch r := res.(type) {
	case Success:
		m.requests.Inc()
		m.replies.Inc()
		m.rtt.Observe(r.RTT.Seconds())
	case Failed:
		if !isDNSError(r.Err) {
			m.requests.Inc()
		}
		m.failures.WithLabelValues(failureReason(r.Err)).Inc()
	}
}

func isDNSError(err error) bool {
	return errors.Is(err, ErrDNSResolveTimeout) || errors.Is(err, ErrDNSResolveFailure)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrSequenceMismatch):
		return "sequence_mismatch"
	case errors.Is(err, ErrUnexpectedResponseType):
		return "unexpected_response"
	case errors.Is(err, ErrDNSResolveTimeout):
		return "dns_timeout"
	case errors.Is(err, ErrDNSResolveFailure):
		return "dns_failure"
	case errors.Is(err, ErrSocket):
		return "socket"
	}
	return "other"
}
