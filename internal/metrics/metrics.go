// Package metrics exposes Prometheus metrics for the risk API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskreg/riskreg/internal/risk"
	"github.com/riskreg/riskreg/internal/summary"
)

// Collector owns a private registry and the riskreg metrics registered on it.
type Collector struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	AssessmentsTotal *prometheus.CounterVec
	RegisterSize     *prometheus.GaugeVec
	AverageScore     prometheus.Gauge
}

// NewCollector creates and registers the metrics under namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Total number of risk assessments submitted, by level",
		}, []string{"level"}),
		RegisterSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "register_records",
			Help:      "Number of records in the register at the last summary, by level",
		}, []string{"level"}),
		AverageScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "register_average_score",
			Help:      "Average risk score at the last summary",
		}),
	}

	c.registry.MustRegister(
		c.RequestsTotal,
		c.RequestDuration,
		c.AssessmentsTotal,
		c.RegisterSize,
		c.AverageScore,
	)
	return c
}

// ObserveRequest records one handled HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveAssessment counts a stored assessment.
func (c *Collector) ObserveAssessment(level risk.Level) {
	c.AssessmentsTotal.WithLabelValues(level.String()).Inc()
}

// ObserveSummary publishes register-wide gauges.
func (c *Collector) ObserveSummary(s summary.Summary) {
	for _, l := range risk.Levels() {
		c.RegisterSize.WithLabelValues(l.String()).Set(float64(s.ByLevel[l]))
	}
	c.AverageScore.Set(s.AverageScore)
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
