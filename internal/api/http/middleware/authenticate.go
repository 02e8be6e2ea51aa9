package middleware

import (
	"context"
	"net/http"

	"github.com/dtroode/taskmanager-server/internal/api/http/cookie"
	"github.com/dtroode/taskmanager-server/internal/api/http/response"
	"github.com/dtroode/taskmanager-server/internal/logger"
	"github.com/dtroode/taskmanager-server/internal/model"
)

// Authenticator verifies access tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.TokenClaims, error)
}

// Authenticate validates the access-token cookie and injects the caller's claims into the context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid access token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticator.Authenticate(r.Context(), cookie.Read(r, cookie.AccessTokenName))
		if err != nil {
			response.Error(w, r, err, m.logger)
			return
		}

		ctx := m.contextManager.SetClaimsToContext(r.Context(), claims)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx, m.logger).With("user_id", claims.UserID.String()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
