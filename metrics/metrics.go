// Package metrics exposes scheduler counters for Prometheus.
//
// Metrics:
//   - purgeplan_solves_total{method}: successful solves by grouping method
//   - purgeplan_errors_total{kind}: failed solves by error kind
//   - purgeplan_solve_duration_seconds: solve latency
//   - purgeplan_kmedoid_restarts: completed restarts per clustering solve
//   - purgeplan_cache_requests_total{result}: cache hits and misses
//
// Each Collector owns its registry, so several can coexist (tests, embedded
// servers) without duplicate-registration panics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "purgeplan"

// Collector records solver activity.
type Collector struct {
	registry *prometheus.Registry

	solves   *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration prometheus.Histogram
	restarts prometheus.Histogram
	cache    *prometheus.CounterVec
}

// NewCollector creates a collector with Go runtime metrics included.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Successful solves by grouping method.",
		}, []string{"method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed solves by error kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of a solve.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		restarts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kmedoid_restarts",
			Help:      "Completed k-medoid restarts per clustering solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Plan cache lookups by result.",
		}, []string{"result"}),
	}
	c.registry.MustRegister(
		c.solves, c.errors, c.duration, c.restarts, c.cache,
		collectors.NewGoCollector(),
	)
	return c
}

// RecordSolve counts a successful solve.
func (c *Collector) RecordSolve(method string, d time.Duration, restarts int) {
	c.solves.WithLabelValues(method).Inc()
	c.duration.Observe(d.Seconds())
	if restarts > 0 {
		c.restarts.Observe(float64(restarts))
	}
}

// RecordError counts a failed solve.
func (c *Collector) RecordError(kind string) {
	if kind == "" {
		kind = "internal"
	}
	c.errors.WithLabelValues(kind).Inc()
}

// RecordCache counts a cache lookup.
func (c *Collector) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cache.WithLabelValues(result).Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
