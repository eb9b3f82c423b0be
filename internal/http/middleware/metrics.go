package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/diversicloud/cloudcompare/internal/observability"
)

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Metrics creates a middleware that records request counts and latency.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			path := r.URL.Path
			observability.RequestsTotal.
				WithLabelValues(path, strconv.Itoa(recorder.status)).
				Inc()
			observability.RequestDuration.
				WithLabelValues(path).
				Observe(time.Since(start).Seconds())
		})
	}
}
