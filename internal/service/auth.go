package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dtroode/taskmanager-server/internal/apierror"
	"github.com/dtroode/taskmanager-server/internal/logger"
	"github.com/dtroode/taskmanager-server/internal/model"
	"github.com/dtroode/taskmanager-server/internal/password"
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// Auth implements registration, login and session operations.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
	now          func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates a user and issues its first token pair.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.PublicUser, model.TokenPair, error) {
	name := strings.TrimSpace(params.Name)
	email := normalizeEmail(params.Email)
	dob := strings.TrimSpace(params.DateOfBirth)

	if missing := missingFields(map[string]string{
		"name":        name,
		"email":       email,
		"password":    params.Password,
		"dateOfBirth": dob,
	}, "name", "email", "password", "dateOfBirth"); len(missing) > 0 {
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrMissingFields(
			"Name, email, password, and date of birth are required", missing...)
	}

	a.logger.Debug("Auth service: starting user registration", "email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrEmailIsTaken(email)
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrInternalServerError(
			fmt.Errorf("failed to get user by email: %w", err))
	}

	if violations := password.Validate(params.Password); len(violations) > 0 {
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrPasswordPolicy(violations)
	}

	dateOfBirth, details := a.validateIdentity(name, email, dob)
	if len(details) > 0 {
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrInvalidFields(details...)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		if errors.Is(err, model.ErrPasswordTooLong) {
			return model.PublicUser{}, model.TokenPair{}, apierror.NewErrInvalidFields("Password is too long to hash.")
		}
		a.logger.Error("Auth service: failed to hash password", "error", err.Error())
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrInternalServerError(err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  dateOfBirth,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyExists):
			a.logger.Info("Auth service: lost registration race", "email", email)
			return model.PublicUser{}, model.TokenPair{}, apierror.NewErrEmailIsTaken(email)
		case errors.Is(err, model.ErrInvalidField):
			return model.PublicUser{}, model.TokenPair{}, apierror.NewErrRejectedByStore(err)
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrInternalServerError(
			fmt.Errorf("failed to create user: %w", err))
	}

	pair, err := a.issue(ctx, user)
	if err != nil {
		return model.PublicUser{}, model.TokenPair{}, err
	}

	a.logger.Info("Auth service: user registered", "user_id", user.ID)

	return user.Public(), pair, nil
}

// Login checks credentials and issues a token pair.
func (a *Auth) Login(ctx context.Context, email, plaintext string) (model.PublicUser, model.TokenPair, error) {
	email = normalizeEmail(email)

	if missing := missingFields(map[string]string{
		"email":    email,
		"password": plaintext,
	}, "email", "password"); len(missing) > 0 {
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrMissingFields("Email and password are required", missing...)
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Debug("Auth service: login for unknown email", "email", email)
			return model.PublicUser{}, model.TokenPair{}, apierror.NewErrUserNotFound()
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrInternalServerError(
			fmt.Errorf("failed to get user by email: %w", err))
	}

	if !a.hasher.Verify(plaintext, user.PasswordHash) {
		a.logger.Info("Auth service: invalid credentials", "user_id", user.ID)
		return model.PublicUser{}, model.TokenPair{}, apierror.NewErrInvalidCredentials()
	}

	pair, err := a.issue(ctx, user)
	if err != nil {
		return model.PublicUser{}, model.TokenPair{}, err
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return user.Public(), pair, nil
}

// Logout revokes the refresh token when the ledger is enabled. It never fails;
// the caller clears cookies regardless.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" || !a.tokenService.LedgerEnabled() {
		return nil
	}

	if err := a.tokenService.Revoke(ctx, refreshToken); err != nil {
		a.logger.Warn("Auth service: failed to revoke refresh token on logout", "error", err.Error())
	}
	return nil
}

// CurrentUser resolves the identity behind an access token.
func (a *Auth) CurrentUser(ctx context.Context, accessToken string) (model.PublicUser, error) {
	claims, err := a.Authenticate(ctx, accessToken)
	if err != nil {
		return model.PublicUser{}, err
	}

	user, err := a.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.PublicUser{}, apierror.NewErrUserNotFound()
		}
		a.logger.Error("Auth service: failed to get user by id",
			"user_id", claims.UserID,
			"error", err.Error())
		return model.PublicUser{}, apierror.NewErrInternalServerError(
			fmt.Errorf("failed to get user by id: %w", err))
	}

	return user.Public(), nil
}

// Authenticate verifies an access token without touching the store.
// Expired tokens and invalid tokens fail with distinct codes.
func (a *Auth) Authenticate(ctx context.Context, accessToken string) (model.TokenClaims, error) {
	if accessToken == "" {
		return model.TokenClaims{}, apierror.NewErrMissingAuthorizationToken()
	}

	claims, err := a.tokenService.VerifyAccess(ctx, accessToken)
	if err != nil {
		if errors.Is(err, model.ErrTokenExpired) {
			return model.TokenClaims{}, apierror.NewErrAuthorizationTokenExpired(err)
		}
		a.logger.Debug("Auth service: rejected access token", "error", err.Error())
		return model.TokenClaims{}, apierror.NewErrInvalidAuthorizationToken(err)
	}

	return claims, nil
}

// Refresh rotates a refresh token into a new token pair.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	if refreshToken == "" {
		return model.TokenPair{}, apierror.NewErrMissingAuthorizationToken()
	}

	pair, err := a.tokenService.Rotate(ctx, refreshToken)
	if err != nil {
		if isTokenRejection(err) {
			a.logger.Info("Auth service: refresh token rejected", "error", err.Error())
			return model.TokenPair{}, apierror.NewErrInvalidRefreshToken(err)
		}
		a.logger.Error("Auth service: failed to rotate tokens", "error", err.Error())
		return model.TokenPair{}, apierror.NewErrInternalServerError(err)
	}

	a.logger.Debug("Auth service: tokens rotated", "user_id", pair.RefreshClaims.UserID)

	return pair, nil
}

func (a *Auth) issue(ctx context.Context, user model.User) (model.TokenPair, error) {
	pair, err := a.tokenService.Issue(ctx, model.TokenClaims{
		UserID:      user.ID,
		Email:       user.Email,
		DateOfBirth: user.DateOfBirth,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		return model.TokenPair{}, apierror.NewErrInternalServerError(err)
	}
	return pair, nil
}

func (a *Auth) validateIdentity(name, email, dob string) (time.Time, []string) {
	var details []string

	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		details = append(details, fmt.Sprintf("Name must be between %d and %d characters.", minNameLength, maxNameLength))
	}

	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email || addr.Name != "" {
		details = append(details, "Email must be a valid email address.")
	}

	dateOfBirth, err := time.Parse(model.DateLayout, dob)
	if err != nil {
		details = append(details, "Date of birth must be a valid date in YYYY-MM-DD format.")
	} else if !dateOfBirth.Before(a.now()) {
		details = append(details, "Date of birth must be in the past.")
	}

	return dateOfBirth, details
}

func isTokenRejection(err error) bool {
	for _, target := range []error{
		model.ErrTokenMalformed,
		model.ErrTokenBadSignature,
		model.ErrTokenExpired,
		model.ErrTokenRevoked,
		model.ErrTokenMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func missingFields(values map[string]string, order ...string) []string {
	var missing []string
	for _, field := range order {
		if values[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}
