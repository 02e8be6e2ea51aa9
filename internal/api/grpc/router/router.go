package router

import (
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/taskmanager-server/internal/api/grpc/middleware"
	"github.com/dtroode/taskmanager-server/internal/logger"
)

// Router represents the gRPC router of the operational endpoint.
type Router struct {
	health *grpchealth.Server
	logger *logger.Logger
}

// New creates new gRPC Router instance.
func New(healthServer *grpchealth.Server, logger *logger.Logger) *Router {
	return &Router{health: healthServer, logger: logger}
}

// Register builds the gRPC server with logging and recovery interceptors
// and registers the health service on it.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recovery := middleware.NewRecovery(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryInterceptor(),
			recovery.UnaryInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamInterceptor(),
			recovery.StreamInterceptor(),
		),
	)
	healthpb.RegisterHealthServer(s, r.health)

	return s
}
