package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/luminafin/lumina/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP request metrics. All routes are fixed
// paths, so the raw path is a safe label.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics recording.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		m.metrics.HTTPRequests.
			WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(wrapped.statusCode)).
			Inc()
		m.metrics.HTTPDuration.
			WithLabelValues(r.Method, r.URL.Path).
			Observe(time.Since(start).Seconds())
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}
