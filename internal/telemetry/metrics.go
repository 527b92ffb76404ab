package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeMiss     = "miss"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the lexicon collectors on a private registry so several
// gateways (and tests) can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	operations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	roots       prometheus.Gauge
	schemes     prometheus.Gauge
	cacheLookup *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sarf",
			Name:      "operations_total",
			Help:      "Lexicon operations by name and outcome.",
		}, []string{"op", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sarf",
			Name:      "operation_duration_seconds",
			Help:      "Lexicon operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"op"}),
		roots: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "sarf",
			Name:      "roots",
			Help:      "Roots currently in the tree.",
		}),
		schemes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "sarf",
			Name:      "schemes",
			Help:      "Schemes currently registered.",
		}),
		cacheLookup: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sarf",
			Name:      "identify_cache_lookups_total",
			Help:      "Identify cache lookups by result.",
		}, []string{"result"}),
	}
}

// Observe records one operation.
func (m *Metrics) Observe(op, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// SetSizes updates the root and scheme gauges.
func (m *Metrics) SetSizes(roots, schemes int) {
	if m == nil {
		return
	}
	m.roots.Set(float64(roots))
	m.schemes.Set(float64(schemes))
}

// CacheLookup counts an identify cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheLookup.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookup.WithLabelValues("miss").Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
