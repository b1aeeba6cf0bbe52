package obs

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/travel-genie/internal/travel"
)

// Metrics records domain outcomes in Prometheus collectors. It implements
// travel.MetricsRecorder.
type Metrics struct {
	registry       *prometheus.Registry
	domainResults  *prometheus.CounterVec
	domainDuration *prometheus.HistogramVec
	flightFallback *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		domainResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travel_genie",
			Name:      "domain_results_total",
			Help:      "Domain operations by outcome.",
		}, []string{"domain", "outcome"}),
		domainDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "travel_genie",
			Name:      "domain_duration_seconds",
			Help:      "Time spent in each domain operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"domain"}),
		flightFallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travel_genie",
			Name:      "flight_fallback_total",
			Help:      "Flight searches answered with built-in data, by reason.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		m.domainResults,
		m.domainDuration,
		m.flightFallback,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveDomain records one domain operation.
func (m *Metrics) ObserveDomain(d travel.Domain, ok bool, elapsed time.Duration) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.domainResults.WithLabelValues(string(d), outcome).Inc()
	m.domainDuration.WithLabelValues(string(d)).Observe(elapsed.Seconds())
}

// IncFlightFallback counts a flight search served from built-in data.
func (m *Metrics) IncFlightFallback(reason string) {
	m.flightFallback.WithLabelValues(reason).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
