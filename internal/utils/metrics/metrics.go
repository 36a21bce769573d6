package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
// All Record methods are safe to call on a nil *Metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPRateLimitedTotal prometheus.Counter

	// Workflow metrics
	TransitionsTotal    *prometheus.CounterVec
	RedemptionsTotal    *prometheus.CounterVec
	CodesGeneratedTotal prometheus.Counter
	CodeCollisionsTotal prometheus.Counter
	SweepDeclinedTotal  prometheus.Counter
	SweepDuration       prometheus.Histogram

	// Notification metrics
	NotificationsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance registered on reg.
// A nil reg registers on the default Prometheus registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "leaguehub"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		HTTPRateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Total number of requests rejected by the HTTP rate limiter",
			},
		),

		// Workflow metrics
		TransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "membership",
				Name:      "transitions_total",
				Help:      "Total number of workflow state transitions",
			},
			[]string{"workflow", "transition"}, // workflow: join_request, captain_request
		),
		RedemptionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invitation_code",
				Name:      "redemptions_total",
				Help:      "Total number of code redemption attempts by outcome",
			},
			[]string{"outcome"},
		),
		CodesGeneratedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invitation_code",
				Name:      "generated_total",
				Help:      "Total number of invitation codes generated",
			},
		),
		CodeCollisionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invitation_code",
				Name:      "collisions_total",
				Help:      "Total number of generated codes that collided with an existing code",
			},
		),
		SweepDeclinedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "join_request",
				Name:      "sweep_declined_total",
				Help:      "Total number of stale join requests declined by the sweep",
			},
		),
		SweepDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "join_request",
				Name:      "sweep_duration_seconds",
				Help:      "Staleness sweep duration in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),

		// Notification metrics
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notify",
				Name:      "deliveries_total",
				Help:      "Total number of notification deliveries by status",
			},
			[]string{"event_type", "status"}, // status: sent, failed, rejected
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeToString(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRateLimited records a request rejected by the HTTP rate limiter.
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.HTTPRateLimitedTotal.Inc()
}

// RecordTransition records a workflow state transition.
func (m *Metrics) RecordTransition(workflow, transition string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(workflow, transition).Inc()
}

// RecordRedemption records the outcome of a code redemption attempt.
func (m *Metrics) RecordRedemption(outcome string) {
	if m == nil {
		return
	}
	m.RedemptionsTotal.WithLabelValues(outcome).Inc()
}

// RecordCodeGenerated records a generated code and the collisions it took.
func (m *Metrics) RecordCodeGenerated(collisions int) {
	if m == nil {
		return
	}
	m.CodesGeneratedTotal.Inc()
	m.CodeCollisionsTotal.Add(float64(collisions))
}

// RecordSweep records a staleness sweep run.
func (m *Metrics) RecordSweep(declined int, duration time.Duration) {
	if m == nil {
		return
	}
	m.SweepDeclinedTotal.Add(float64(declined))
	m.SweepDuration.Observe(duration.Seconds())
}

// RecordNotification records a notification delivery attempt.
func (m *Metrics) RecordNotification(eventType, status string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(eventType, status).Inc()
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
