// Package metrics collects and exposes Prometheus metrics for the relay.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the server and aggregator record through.
type Recorder interface {
	RecordRequest(route string, statusCode int)
	RecordUpstreamLatency(service string, duration time.Duration)
	RecordUpstreamError(service string)
	RecordCacheHit()
	RecordCacheMiss()
	RecordTokenRefresh(outcome string)
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	requests        *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	tokenRefreshes  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vibent_requests_total",
			Help: "Requests served, labeled by route and status code.",
		}, []string{"route", "status_code"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vibent_upstream_latency_seconds",
			Help:    "Upstream call latency in seconds, labeled by service.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vibent_upstream_errors_total",
			Help: "Failed upstream calls, labeled by service.",
		}, []string{"service"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vibent_cache_hits_total",
			Help: "Concert cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vibent_cache_misses_total",
			Help: "Concert cache misses.",
		}),
		tokenRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vibent_token_refreshes_total",
			Help: "Token refresh attempts, labeled by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.requests,
		c.upstreamLatency,
		c.upstreamErrors,
		c.cacheHits,
		c.cacheMisses,
		c.tokenRefreshes,
	)

	return c
}

// RecordRequest counts a served request by route and status code.
func (c *Collector) RecordRequest(route string, statusCode int) {
	c.requests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
}

// RecordUpstreamLatency observes the latency of an upstream call.
func (c *Collector) RecordUpstreamLatency(service string, duration time.Duration) {
	c.upstreamLatency.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordUpstreamError counts a failed upstream call.
func (c *Collector) RecordUpstreamError(service string) {
	c.upstreamErrors.WithLabelValues(service).Inc()
}

// RecordCacheHit counts a concert cache hit.
func (c *Collector) RecordCacheHit() {
	c.cacheHits.Inc()
}

// RecordCacheMiss counts a concert cache miss.
func (c *Collector) RecordCacheMiss() {
	c.cacheMisses.Inc()
}

// RecordTokenRefresh counts a refresh attempt. Outcome is one of
// "success", "terminal", or "transient".
func (c *Collector) RecordTokenRefresh(outcome string) {
	c.tokenRefreshes.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop is a Recorder that discards everything, for callers that serve
// without a metrics registry.
type Noop struct{}

func (Noop) RecordRequest(string, int)                   {}
func (Noop) RecordUpstreamLatency(string, time.Duration) {}
func (Noop) RecordUpstreamError(string)                  {}
func (Noop) RecordCacheHit()                             {}
func (Noop) RecordCacheMiss()                            {}
func (Noop) RecordTokenRefresh(string)                   {}
