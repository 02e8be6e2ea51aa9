package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

// RefreshTokenStore records issued refresh tokens when the rotation ledger is enabled.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	RevokeByJTI(ctx context.Context, jti string) error
	// Rotate revokes oldJTI and records next atomically.
	Rotate(ctx context.Context, oldJTI string, next RefreshToken) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type RefreshToken struct {
	ID             uuid.UUID
	JTI            string
	UserID         uuid.UUID
	TokenHash      []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RotatedFromJTI *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
