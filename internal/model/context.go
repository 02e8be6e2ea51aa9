package model

import "context"

// ContextManager stores verified access-token claims in a request context.
type ContextManager interface {
	SetClaimsToContext(ctx context.Context, claims TokenClaims) context.Context
	GetClaimsFromContext(ctx context.Context) (TokenClaims, bool)
}
