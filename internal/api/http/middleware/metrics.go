package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/taskmanager-server/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics records request counters and latency labelled by the matched route pattern.
type Metrics struct {
	recorder metrics.Recorder
}

// NewMetrics creates a new Metrics middleware.
func NewMetrics(recorder metrics.Recorder) *Metrics {
	return &Metrics{recorder: recorder}
}

func (m *Metrics) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		m.recorder.RecordRequest(r.Method, routePattern(r), statusOf(ww), time.Since(start))
	})
}

// routePattern is read after routing so that raw paths with ids never become label values.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
