package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/taskmanager-server/internal/logger"
	"github.com/dtroode/taskmanager-server/internal/model"
)

// TokenService issues, rotates and revokes token pairs. It composes the
// TokenManager with an optional RefreshTokenStore; with a nil store every
// refresh token stays valid until it expires.
type TokenService struct {
	manager model.TokenManager
	store   model.RefreshTokenStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger, now: time.Now}
}

// LedgerEnabled reports whether issued refresh tokens are recorded server-side.
func (s *TokenService) LedgerEnabled() bool {
	return s.store != nil
}

// Issue mints an access and a refresh token for the identity in claims.
func (s *TokenService) Issue(ctx context.Context, claims model.TokenClaims) (model.TokenPair, error) {
	return s.issue(ctx, identityOf(claims))
}

// Rotate verifies the presented refresh token and mints a new pair from its claims.
// When the ledger is enabled the presented token must be recorded and unrevoked;
// revoking it and recording the new one happen in a single store transaction,
// so a failed write leaves the presented token usable.
func (s *TokenService) Rotate(ctx context.Context, presentedRefresh string) (model.TokenPair, error) {
	claims, err := s.manager.VerifyRefresh(presentedRefresh)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("verify refresh: %w", err)
	}

	if s.store == nil {
		pair, _, err := s.mint(identityOf(claims), nil)
		return pair, err
	}

	rt, err := s.store.GetByJTI(ctx, claims.JTI)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, fmt.Errorf("unknown refresh token: %w", model.ErrTokenMismatch)
		}
		return model.TokenPair{}, fmt.Errorf("get refresh record: %w", err)
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), s.now()); err != nil {
		return model.TokenPair{}, err
	}

	pair, record, err := s.mint(identityOf(claims), &rt.JTI)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.Rotate(ctx, rt.JTI, record); err != nil {
		return model.TokenPair{}, fmt.Errorf("rotate refresh record: %w", err)
	}

	return pair, nil
}

// Revoke marks the presented refresh token as revoked. It is a no-op without a ledger.
func (s *TokenService) Revoke(ctx context.Context, presentedRefresh string) error {
	if s.store == nil {
		return nil
	}

	claims, err := s.manager.VerifyRefresh(presentedRefresh)
	if err != nil {
		return fmt.Errorf("verify refresh: %w", err)
	}

	if err := s.store.RevokeByJTI(ctx, claims.JTI); err != nil {
		return fmt.Errorf("revoke refresh: %w", err)
	}
	return nil
}

// PurgeExpired removes ledger rows whose refresh token has expired.
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, nil
	}

	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired refresh tokens: %w", err)
	}
	return n, nil
}

// RunLedgerJanitor calls PurgeExpired every period until ctx is done.
func (s *TokenService) RunLedgerJanitor(ctx context.Context, period time.Duration) {
	if s.store == nil || period <= 0 {
		return
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				s.logger.Error("refresh ledger cleanup failed", "error", err.Error())
				continue
			}
			if n > 0 {
				s.logger.Info("refresh ledger cleanup", "deleted", n)
			}
		}
	}
}

// VerifyAccess decodes an access token.
func (s *TokenService) VerifyAccess(_ context.Context, token string) (model.TokenClaims, error) {
	return s.manager.VerifyAccess(token)
}

func (s *TokenService) issue(ctx context.Context, identity model.TokenClaims) (model.TokenPair, error) {
	pair, record, err := s.mint(identity, nil)
	if err != nil {
		return model.TokenPair{}, err
	}

	if s.store != nil {
		if err := s.store.Create(ctx, record); err != nil {
			return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
		}
	}

	return pair, nil
}

// mint signs a new pair and builds the ledger row for its refresh token without persisting it.
func (s *TokenService) mint(identity model.TokenClaims, rotatedFrom *string) (model.TokenPair, model.RefreshToken, error) {
	access, accessClaims, err := s.manager.IssueAccess(identity)
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, refreshClaims, err := s.manager.IssueRefresh(identity)
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("issue refresh: %w", err)
	}

	now := s.now()
	record := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            refreshClaims.JTI,
		UserID:         identity.UserID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       refreshClaims.IssuedAt,
		ExpiresAt:      refreshClaims.ExpiresAt,
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return model.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessClaims.ExpiresAt,
		RefreshExpiresAt: refreshClaims.ExpiresAt,
		RefreshClaims:    refreshClaims,
	}, record, nil
}

// identityOf keeps only the identity part of claims so a rotated pair never reuses jti or timestamps.
func identityOf(claims model.TokenClaims) model.TokenClaims {
	return model.TokenClaims{
		UserID:      claims.UserID,
		Email:       claims.Email,
		DateOfBirth: claims.DateOfBirth,
	}
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if !equalBytes(rt.TokenHash, presentedHash) {
		return model.ErrTokenMismatch
	}
	return nil
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
