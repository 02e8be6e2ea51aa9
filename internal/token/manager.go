package token

import (
	"fmt"
	"time"

	"github.com/dtroode/taskmanager-server/internal/model"
)

// Manager binds kind-specific secrets and lifetimes to a JWT signer.
// Access and refresh tokens never share a secret, so one kind cannot stand in for the other.
type Manager struct {
	jwt           *JWT
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// ManagerConfig holds the secrets and lifetimes for both token kinds.
type ManagerConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// NewManager creates a token manager on top of j.
func NewManager(j *JWT, cfg ManagerConfig) *Manager {
	return &Manager{
		jwt:           j,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

func (m *Manager) IssueAccess(claims model.TokenClaims) (string, model.TokenClaims, error) {
	claims.Kind = model.TokenKindAccess
	return m.jwt.Issue(claims, m.accessSecret, m.accessTTL)
}

func (m *Manager) IssueRefresh(claims model.TokenClaims) (string, model.TokenClaims, error) {
	claims.Kind = model.TokenKindRefresh
	return m.jwt.Issue(claims, m.refreshSecret, m.refreshTTL)
}

func (m *Manager) VerifyAccess(token string) (model.TokenClaims, error) {
	return m.verify(token, m.accessSecret, model.TokenKindAccess)
}

func (m *Manager) VerifyRefresh(token string) (model.TokenClaims, error) {
	return m.verify(token, m.refreshSecret, model.TokenKindRefresh)
}

func (m *Manager) verify(token string, secret []byte, kind model.TokenKind) (model.TokenClaims, error) {
	claims, err := m.jwt.Verify(token, secret)
	if err != nil {
		return model.TokenClaims{}, err
	}
	if claims.Kind != kind {
		return model.TokenClaims{}, fmt.Errorf("%w: token type mismatch: %s", model.ErrTokenMalformed, claims.Kind)
	}
	return claims, nil
}
