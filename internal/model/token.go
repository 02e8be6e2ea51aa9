package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	// TokenKindAccess is a short-lived token proving identity on ordinary requests.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is a long-lived token used only to obtain a new pair.
	TokenKindRefresh TokenKind = "refresh"
)

var (
	// ErrTokenMalformed means the token could not be parsed or decoded.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenBadSignature means the token signature does not match the secret.
	ErrTokenBadSignature = errors.New("token signature is invalid")
	// ErrTokenExpired means the token is past its expiry.
	ErrTokenExpired = errors.New("token is expired")
)

// TokenClaims is the identity claim set embedded in both token kinds.
type TokenClaims struct {
	UserID      uuid.UUID
	Email       string
	DateOfBirth time.Time
	Kind        TokenKind
	JTI         string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenPair is a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	RefreshClaims    TokenClaims
}

// TokenManager issues and verifies kind-specific tokens.
type TokenManager interface {
	IssueAccess(claims TokenClaims) (string, TokenClaims, error)
	IssueRefresh(claims TokenClaims) (string, TokenClaims, error)
	VerifyAccess(token string) (TokenClaims, error)
	VerifyRefresh(token string) (TokenClaims, error)
}
