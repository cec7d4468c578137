// Package metrics exposes Prometheus instrumentation for the HTTP API and
// the background allocator.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coopledger_http_requests_total",
		Help: "HTTP requests by method, path pattern and status code.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coopledger_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	AllocatorTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coopledger_allocator_ticks_total",
		Help: "Completed background allocator cycles.",
	})

	AllocatorErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coopledger_allocator_errors_total",
		Help: "Failed operations inside allocator cycles.",
	})

	YieldClaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coopledger_yield_claimed_total",
		Help: "Total yield pulled from operator vaults, in minor units.",
	})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency per route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		requestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
