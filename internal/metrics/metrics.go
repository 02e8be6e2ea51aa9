// Package metrics exposes Prometheus collectors for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/taskmanager-server/internal/apierror"
)

const resultSuccess = "success"

// Recorder is what the transport layer needs from a metrics backend.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordAuthOperation(operation string, err error)
}

// Collector records request and auth counters on a Prometheus registry.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	authOps  *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Number of auth operations by operation and result.",
		}, []string{"operation", "result"}),
	}

	reg.MustRegister(c.requests, c.duration, c.authOps)

	return c
}

// RecordRequest counts a finished request and observes its latency.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthOperation counts an auth operation. The result label is the error kind on failure.
func (c *Collector) RecordAuthOperation(operation string, err error) {
	result := resultSuccess
	if err != nil {
		result = string(apierror.KindOf(err))
	}
	c.authOps.WithLabelValues(operation, result).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}

func (Nop) RecordAuthOperation(string, error) {}
