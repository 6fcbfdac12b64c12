// Package telemetry exposes Prometheus metrics for scans, catalog
// operations, the snapshot cache, and the HTTP API.
// Every Collector owns its registry, so tests can build as many as they like.
// All methods are safe on a nil *Collector, which records nothing.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "promptdex"

// Operation status labels.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	// Scan metrics
	ScanDuration prometheus.Histogram
	Documents    prometheus.Gauge
	SkippedFiles *prometheus.CounterVec

	// Catalog metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates a collector with its own registry. An empty namespace means DefaultNamespace.
func New(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Duration of full catalog scans in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		Documents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Number of documents found by the most recent scan",
		}),
		SkippedFiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_skipped_total",
			Help:      "Total number of entries skipped during scans",
		}, []string{"kind"}),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of catalog operations",
		}, []string{"operation", "status"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Catalog operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of snapshot cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of snapshot cache misses",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	c.registry.MustRegister(
		c.ScanDuration,
		c.Documents,
		c.SkippedFiles,
		c.Operations,
		c.OperationDuration,
		c.CacheHits,
		c.CacheMisses,
		c.HTTPRequests,
		c.HTTPDuration,
	)

	return c
}

// RecordScan records one completed scan.
func (c *Collector) RecordScan(duration time.Duration, documents, skippedFiles, skippedDirs int) {
	if c == nil {
		return
	}
	c.ScanDuration.Observe(duration.Seconds())
	c.Documents.Set(float64(documents))
	if skippedFiles > 0 {
		c.SkippedFiles.WithLabelValues("file").Add(float64(skippedFiles))
	}
	if skippedDirs > 0 {
		c.SkippedFiles.WithLabelValues("dir").Add(float64(skippedDirs))
	}
}

// RecordOperation records a catalog operation with its outcome.
func (c *Collector) RecordOperation(operation, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.Operations.WithLabelValues(operation, status).Inc()
	c.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheHit increments the cache hit counter.
func (c *Collector) RecordCacheHit() {
	if c == nil {
		return
	}
	c.CacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func (c *Collector) RecordCacheMiss() {
	if c == nil {
		return
	}
	c.CacheMisses.Inc()
}

// RecordHTTP records one served request. route is the matched route pattern.
func (c *Collector) RecordHTTP(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
