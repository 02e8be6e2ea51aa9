package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/taskmanager-server/internal/model"
)

type claimsKey struct{}

// Manager represents an HTTP request context manager for verified token claims.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext returns a copy of ctx carrying the claims of the authenticated caller.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext returns the claims stored by SetClaimsToContext.
// Claims without a user ID are reported as absent.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.TokenClaims)
	if !ok || claims.UserID == uuid.Nil {
		return model.TokenClaims{}, false
	}
	return claims, true
}

// GetUserIDFromContext is a shorthand for the caller's user ID.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := m.GetClaimsFromContext(ctx)
	return claims.UserID, ok
}
