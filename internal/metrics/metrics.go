// Package metrics exposes Prometheus instrumentation for the cache
// server's HTTP surface and underlying engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector the server registers. It owns its
// own registry rather than using the global default so tests can spin
// up independent instances without collector-already-registered
// panics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorsTotal     *prometheus.CounterVec

	CacheHits      prometheus.Gauge
	CacheMisses    prometheus.Gauge
	CacheEvictions prometheus.Gauge
	CacheExpired   prometheus.Gauge
	CacheSize      prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a Metrics instance with every collector registered
// against a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_http_requests_total",
			Help: "Total HTTP requests handled by the cache server.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cache_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_http_errors_total",
			Help: "Total HTTP requests resulting in a 4xx/5xx response.",
		}, []string{"method", "path", "status"}),
		CacheHits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cache_engine_hits_total",
			Help: "Total cache lookups that found a live entry.",
		}),
		CacheMisses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cache_engine_misses_total",
			Help: "Total cache lookups that found nothing or an expired entry.",
		}),
		CacheEvictions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cache_engine_evictions_total",
			Help: "Total entries evicted due to the capacity bound.",
		}),
		CacheExpired: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cache_engine_expired_removals_total",
			Help: "Total entries removed because their TTL elapsed.",
		}),
		CacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cache_engine_current_size",
			Help: "Current number of live entries held by the cache.",
		}),
		registry: reg,
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ErrorsTotal,
		m.CacheHits,
		m.CacheMisses,
		m.CacheEvictions,
		m.CacheExpired,
		m.CacheSize,
	)

	return m
}

// Handler returns the HTTP handler that serves this registry's
// metrics in the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest records the outcome of one HTTP request.
func (m *Metrics) RecordRequest(method, path, status string) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordError records an HTTP request that ended in a 4xx/5xx status.
func (m *Metrics) RecordError(method, path, status string) {
	m.ErrorsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveDuration records how long an HTTP request took to handle.
func (m *Metrics) ObserveDuration(method, path string, seconds float64) {
	m.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// SyncCacheStats copies a cache.Stats-shaped snapshot into the engine
// gauges. It takes plain values rather than importing the cache
// package so metrics has no dependency on the engine's types. The
// counters are cumulative totals reported by the engine itself, so
// gauges (rather than prometheus.Counter, which only supports Inc/Add)
// are the right fit for mirroring an externally-owned running total.
func (m *Metrics) SyncCacheStats(hits, misses, evictions, expired uint64, size int) {
	m.CacheHits.Set(float64(hits))
	m.CacheMisses.Set(float64(misses))
	m.CacheEvictions.Set(float64(evictions))
	m.CacheExpired.Set(float64(expired))
	m.CacheSize.Set(float64(size))
}
