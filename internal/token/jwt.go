package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/taskmanager-server/internal/model"
)

// Claims is the JWT payload: identity claims plus the token kind.
type Claims struct {
	jwt.RegisteredClaims
	UserID      uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DateOfBirth string    `json:"dateOfBirth"`
	TokenType   string    `json:"typ"`
}

// JWT signs and verifies HS256 tokens against a caller-supplied secret.
type JWT struct {
	now func() time.Time
}

// Option configures JWT.
type Option func(*JWT)

// WithClock overrides the time source used for iat/exp and for validation.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT signer.
func NewJWT(opts ...Option) *JWT {
	j := &JWT{now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Issue signs claims with secret. The token expires ttl after now and gets a fresh jti.
// The returned claims carry the values actually encoded.
func (j *JWT) Issue(claims model.TokenClaims, secret []byte, ttl time.Duration) (string, model.TokenClaims, error) {
	now := j.now()
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(now.Add(ttl))
	jti := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   claims.UserID.String(),
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
		UserID:      claims.UserID,
		Email:       claims.Email,
		DateOfBirth: claims.DateOfBirth.UTC().Format(model.DateLayout),
		TokenType:   string(claims.Kind),
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("failed to sign %s token: %w", claims.Kind, err)
	}

	issued := claims
	issued.JTI = jti
	issued.DateOfBirth = dateOnly(claims.DateOfBirth)
	issued.IssuedAt = issuedAt.Time
	issued.ExpiresAt = expiresAt.Time

	return tokenString, issued, nil
}

// Verify checks the signature and expiry of tokenString and decodes its claims.
// Failures wrap model.ErrTokenMalformed, model.ErrTokenBadSignature or model.ErrTokenExpired.
func (j *JWT) Verify(tokenString string, secret []byte) (model.TokenClaims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return model.TokenClaims{}, classify(err)
	}

	dob, err := time.Parse(model.DateLayout, claims.DateOfBirth)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("%w: bad dateOfBirth claim: %v", model.ErrTokenMalformed, err)
	}

	out := model.TokenClaims{
		UserID:      claims.UserID,
		Email:       claims.Email,
		DateOfBirth: dob,
		Kind:        model.TokenKind(claims.TokenType),
		JTI:         claims.ID,
		ExpiresAt:   claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", model.ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", model.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", model.ErrTokenMalformed, err)
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
