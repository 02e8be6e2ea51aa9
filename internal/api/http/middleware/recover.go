package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dtroode/taskmanager-server/internal/api/http/response"
	"github.com/dtroode/taskmanager-server/internal/apierror"
	"github.com/dtroode/taskmanager-server/internal/logger"
)

// Recover turns handler panics into a JSON 500 response.
type Recover struct {
	logger *logger.Logger
}

// NewRecover creates a new Recover middleware.
func NewRecover(logger *logger.Logger) *Recover {
	return &Recover{logger: logger}
}

// Handle recovers from panics raised by next. http.ErrAbortHandler is re-raised.
func (m *Recover) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context(), m.logger).Error("HTTP: panic recovered",
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))

			response.Error(w, r, apierror.NewErrInternalServerError(fmt.Errorf("panic: %v", rec)), m.logger)
		}()

		next.ServeHTTP(w, r)
	})
}
