package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rohits-web03/sharevault/internal/metrics"
	"github.com/rohits-web03/sharevault/internal/utils"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// Logger logs every request and records its Prometheus metrics.
func Logger(l *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := utils.RequestID(r.Header.Get(utils.RequestIDHeader))
			w.Header().Set(utils.RequestIDHeader, requestID)

			rec := &statusRecorder{
				ResponseWriter: w,
				status:         http.StatusOK,
			}

			matched := new(string)
			r = r.WithContext(context.WithValue(r.Context(), routeKey{}, matched))
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			route := *matched
			if route == "" {
				route = r.Pattern
			}
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

			entry := l.WithFields(log.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"bytes":      rec.bytes,
				"duration":   elapsed.String(),
			})
			if rec.status >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Info("request")
		})
	}
}
