// Package metrics exposes prometheus instrumentation for the query engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parcelapi_queries_total",
		Help: "Total engine queries by operation",
	}, []string{"operation"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parcelapi_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parcelapi_cache_hits_total",
		Help: "Total stats cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parcelapi_cache_misses_total",
		Help: "Total stats cache misses",
	})
)

func init() {
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
}

// Handler returns the prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
