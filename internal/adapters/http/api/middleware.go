package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/draftkit/pkg/metrics"
)

// errorClass labels a failed response for the error metrics.
type errorClass struct {
	kind     string
	severity string
}

// statusClasses covers the statuses the draft handlers answer with. Other
// 4xx and 5xx codes fall back to classify.
var statusClasses = map[int]errorClass{
	http.StatusBadRequest:          {"client_error", "medium"},
	http.StatusNotFound:            {"not_found", "low"},
	http.StatusMethodNotAllowed:    {"client_error", "low"},
	http.StatusConflict:            {"conflict", "low"},
	http.StatusUnprocessableEntity: {"unprocessable", "medium"},
	http.StatusServiceUnavailable:  {"unavailable", "high"},
}

func classify(status int) errorClass {
	if c, ok := statusClasses[status]; ok {
		return c
	}
	if status >= http.StatusInternalServerError {
		return errorClass{"server_error", "high"}
	}
	return errorClass{"client_error", "medium"}
}

// MetricsMiddleware records request count and latency per endpoint, plus
// the error metrics for responses of 400 and above.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		ms := float64(time.Since(start).Microseconds()) / 1000
		code := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, ms)

		if rec.status < http.StatusBadRequest {
			return
		}
		c := classify(rec.status)
		metrics.RecordErrorByEndpoint(endpoint, r.Method, c.kind)
		metrics.RecordErrorByType(c.kind, c.severity)
		metrics.RecordErrorLatency("http", c.kind, ms)
	}
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}
