package middleware

import (
	"net/http"
	"strconv"
	"time"

	"sqlrunner/pkg/infrastructure/metrics"
)

// Metrics returns middleware that records request counts and latencies.
func Metrics(collector metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			collector.IncrementCounter("http_requests_total",
				"method", r.Method,
				"status", strconv.Itoa(recorder.status))
			collector.RecordHistogram("http_request_duration_seconds",
				time.Since(start).Seconds(),
				"method", r.Method)
		})
	}
}
