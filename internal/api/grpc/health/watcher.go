// Package health drives the gRPC health service from periodic dependency checks.
package health

import (
	"context"
	"time"

	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/taskmanager-server/internal/logger"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "taskmanager.v1.API"

const (
	defaultInterval = 10 * time.Second
	maxPingTimeout  = 2 * time.Second
)

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher pings the database on an interval and publishes the result.
type Watcher struct {
	pinger   Pinger
	server   *grpchealth.Server
	interval time.Duration
	logger   *logger.Logger

	last healthpb.HealthCheckResponse_ServingStatus
}

func NewWatcher(pinger Pinger, server *grpchealth.Server, interval time.Duration, logger *logger.Logger) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher{
		pinger:   pinger,
		server:   server,
		interval: interval,
		logger:   logger,
		last:     healthpb.HealthCheckResponse_UNKNOWN,
	}
}

// Run checks immediately and then on every tick until ctx is done.
// On return every service is reported NOT_SERVING.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.server.Shutdown()

	w.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, min(w.interval, maxPingTimeout))
	defer cancel()

	next := healthpb.HealthCheckResponse_SERVING
	if err := w.pinger.Ping(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		next = healthpb.HealthCheckResponse_NOT_SERVING
		if w.last != next {
			w.logger.Error("Health watcher: database ping failed", "error", err.Error())
		}
	}

	if w.last != next {
		w.logger.Info("Health watcher: serving status changed",
			"from", w.last.String(),
			"to", next.String())
	}
	w.last = next

	w.server.SetServingStatus("", next)
	w.server.SetServingStatus(ServiceName, next)
}
