package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles the request-facing Prometheus instruments. NewCollector
// registers them against the given Registerer; main.go does not call it,
// and no middleware stage records into them.
type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseBytes   *prometheus.HistogramVec
	GzipRatio       prometheus.Histogram
}

// NewCollector builds and registers a Collector against reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total requests processed, labeled by site host and response status class.",
		}, []string{"host", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Request handling latency from dispatch to the last response byte.",
			Buckets: prometheus.DefBuckets,
		}, []string{"host", "stage"}),
		ResponseBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "response_bytes",
			Help:    "Response body size in bytes.",
			Buckets: prometheus.ExponentialBuckets(64, 4, 10),
		}, []string{"host"}),
		GzipRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gzip_compression_ratio",
			Help:    "compressed_bytes / uncompressed_bytes for gzip-rewritten responses.",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}

	reg.MustRegister(c.RequestsTotal, c.RequestDuration, c.ResponseBytes, c.GzipRatio)
	return c
}
