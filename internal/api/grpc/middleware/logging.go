package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/taskmanager-server/internal/logger"
)

// Logging adapts the application logger to go-grpc-middleware interceptors.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Logger returns the go-grpc-middleware view of the application logger.
func (l *Logging) Logger() logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.logger.Log(ctx, slog.Level(lvl), "gRPC: "+msg, fields...)
	})
}

// UnaryInterceptor logs the outcome of each unary call.
func (l *Logging) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return logging.UnaryServerInterceptor(l.Logger(), logging.WithLogOnEvents(logging.FinishCall))
}

// StreamInterceptor logs the outcome of each stream, e.g. Health/Watch.
func (l *Logging) StreamInterceptor() grpc.StreamServerInterceptor {
	return logging.StreamServerInterceptor(l.Logger(), logging.WithLogOnEvents(logging.StartCall, logging.FinishCall))
}

// Recovery converts handler panics into codes.Internal and logs the stack.
type Recovery struct {
	logger *logger.Logger
}

// NewRecovery creates a new Recovery middleware.
func NewRecovery(logger *logger.Logger) *Recovery {
	return &Recovery{logger: logger}
}

func (r *Recovery) handle(ctx context.Context, p any) error {
	r.logger.ErrorContext(ctx, "gRPC: panic recovered",
		"panic", fmt.Sprint(p),
		"stack", string(debug.Stack()))
	return status.Error(codes.Internal, "internal server error")
}

func (r *Recovery) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(r.handle))
}

func (r *Recovery) StreamInterceptor() grpc.StreamServerInterceptor {
	return recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(r.handle))
}
