package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/taskmanager-server/internal/apierror"
	servermocks "github.com/dtroode/taskmanager-server/internal/mocks"
	"github.com/dtroode/taskmanager-server/internal/model"
	"github.com/dtroode/taskmanager-server/internal/password"
	"github.com/dtroode/taskmanager-server/internal/testutil"
	"github.com/dtroode/taskmanager-server/internal/token"
)

type authFixture struct {
	auth    *Auth
	users   *servermocks.UserStore
	hasher  *password.Hasher
	manager *token.Manager
	now     time.Time
}

func newAuthFixture(t *testing.T, ledger model.RefreshTokenStore) *authFixture {
	t.Helper()

	f := &authFixture{
		users:  servermocks.NewUserStore(t),
		hasher: password.NewHasher(bcrypt.MinCost),
		now:    time.Now().Truncate(time.Second),
	}
	clock := func() time.Time { return f.now }

	f.manager = token.NewManager(token.NewJWT(token.WithClock(clock)), token.ManagerConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    24 * time.Hour,
	})

	tokens := NewTokenService(f.manager, ledger, testutil.MakeNoopLogger())
	tokens.now = clock

	f.auth = NewAuth(f.users, f.hasher, tokens, testutil.MakeNoopLogger())
	f.auth.now = clock

	return f
}

func (f *authFixture) storedUser(t *testing.T, plaintext string) model.User {
	t.Helper()

	hash, err := f.hasher.Hash(plaintext)
	require.NoError(t, err)

	return model.User{
		ID:           uuid.New(),
		Name:         "Ada",
		Email:        "ada@x.com",
		PasswordHash: hash,
		DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    f.now,
		UpdatedAt:    f.now,
	}
}

func requireKind(t *testing.T, err error, kind apierror.Kind) *apierror.APIError {
	t.Helper()

	apiErr, ok := apierror.As(err)
	require.True(t, ok, "expected APIError, got %v", err)
	require.Equal(t, kind, apiErr.Kind)
	return apiErr
}

func validRegisterParams() model.RegisterParams {
	return model.RegisterParams{
		Name:        "Ada",
		Email:       "ada@x.com",
		Password:    "Abcdef1!",
		DateOfBirth: "1990-01-01",
	}
}

func TestAuth_Register_Success(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	f.users.On("GetByEmail", ctx, "ada@x.com").Return(model.User{}, model.ErrNotFound).Once()
	f.users.On("Create", ctx, mock.MatchedBy(func(u model.User) bool {
		return u.ID != uuid.Nil &&
			u.Name == "Ada" &&
			u.Email == "ada@x.com" &&
			u.PasswordHash != "Abcdef1!" &&
			f.hasher.Verify("Abcdef1!", u.PasswordHash) &&
			u.DateOfBirth.Equal(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return(func(_ context.Context, u model.User) model.User {
		u.CreatedAt = f.now
		u.UpdatedAt = f.now
		return u
	}, nil).Once()

	user, pair, err := f.auth.Register(ctx, validRegisterParams())
	require.NoError(t, err)

	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@x.com", user.Email)
	assert.Equal(t, "1990-01-01", user.DateOfBirth)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	access, err := f.manager.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, access.UserID)
	assert.Equal(t, "ada@x.com", access.Email)

	refresh, err := f.manager.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refresh.UserID)
	assert.Equal(t, f.now.Add(24*time.Hour), pair.RefreshExpiresAt)
	assert.Equal(t, f.now.Add(time.Minute), pair.AccessExpiresAt)
}

func TestAuth_Register_NormalizesEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	params := validRegisterParams()
	params.Email = "  Ada@X.com "

	f.users.On("GetByEmail", ctx, "ada@x.com").Return(model.User{}, model.ErrNotFound).Once()
	f.users.On("Create", ctx, mock.MatchedBy(func(u model.User) bool { return u.Email == "ada@x.com" })).
		Return(func(_ context.Context, u model.User) model.User { return u }, nil).Once()

	user, _, err := f.auth.Register(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", user.Email)
}

func TestAuth_Register_MissingFields(t *testing.T) {
	f := newAuthFixture(t, nil)

	params := validRegisterParams()
	params.Name = "  "
	params.DateOfBirth = ""

	_, _, err := f.auth.Register(context.Background(), params)
	apiErr := requireKind(t, err, apierror.KindValidation)
	assert.Equal(t, "Name, email, password, and date of birth are required", apiErr.Message)
	assert.Equal(t, []string{"name", "dateOfBirth"}, apiErr.Details)
	f.users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuth_Register_ExistingEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	f.users.On("GetByEmail", ctx, "ada@x.com").Return(f.storedUser(t, "Abcdef1!"), nil).Once()

	_, _, err := f.auth.Register(ctx, validRegisterParams())
	requireKind(t, err, apierror.KindConflict)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Register_WeakPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	params := validRegisterParams()
	params.Password = "abc"

	f.users.On("GetByEmail", ctx, "ada@x.com").Return(model.User{}, model.ErrNotFound).Once()

	_, _, err := f.auth.Register(ctx, params)
	apiErr := requireKind(t, err, apierror.KindValidation)
	assert.Equal(t, "Password validation failed", apiErr.Message)
	assert.Equal(t, []string{
		password.MsgTooShort,
		password.MsgNoUpper,
		password.MsgNoDigit,
		password.MsgNoSpecial,
	}, apiErr.Details)
}

func TestAuth_Register_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.RegisterParams)
		detail string
	}{
		{
			name:   "short name",
			mutate: func(p *model.RegisterParams) { p.Name = "A" },
			detail: "Name must be between 2 and 100 characters.",
		},
		{
			name:   "bad email",
			mutate: func(p *model.RegisterParams) { p.Email = "not-an-email" },
			detail: "Email must be a valid email address.",
		},
		{
			name:   "bad date",
			mutate: func(p *model.RegisterParams) { p.DateOfBirth = "01/01/1990" },
			detail: "Date of birth must be a valid date in YYYY-MM-DD format.",
		},
		{
			name:   "future date",
			mutate: func(p *model.RegisterParams) { p.DateOfBirth = "2999-01-01" },
			detail: "Date of birth must be in the past.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newAuthFixture(t, nil)

			params := validRegisterParams()
			tt.mutate(&params)

			f.users.On("GetByEmail", ctx, normalizeEmail(params.Email)).Return(model.User{}, model.ErrNotFound).Once()

			_, _, err := f.auth.Register(ctx, params)
			apiErr := requireKind(t, err, apierror.KindValidation)
			assert.Contains(t, apiErr.Details, tt.detail)
		})
	}
}

func TestAuth_Register_StoreRaceIsConflict(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	f.users.On("GetByEmail", ctx, "ada@x.com").Return(model.User{}, model.ErrNotFound).Once()
	f.users.On("Create", ctx, mock.Anything).Return(model.User{}, model.ErrAlreadyExists).Once()

	_, _, err := f.auth.Register(ctx, validRegisterParams())
	requireKind(t, err, apierror.KindConflict)
}

func TestAuth_Register_StoreFieldViolationIsValidation(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	f.users.On("GetByEmail", ctx, "ada@x.com").Return(model.User{}, model.ErrNotFound).Once()
	storeErr := fmt.Errorf("failed to create user: %w",
		fmt.Errorf("%w: %s", model.ErrInvalidField, "users_date_of_birth_past"))
	f.users.On("Create", ctx, mock.Anything).Return(model.User{}, storeErr).Once()

	_, _, err := f.auth.Register(ctx, validRegisterParams())
	apiErr := requireKind(t, err, apierror.KindValidation)
	assert.Equal(t, []string{"One or more fields have invalid values."}, apiErr.Details)
	for _, detail := range apiErr.Details {
		assert.NotContains(t, detail, "failed to")
		assert.NotContains(t, detail, "users_date_of_birth_past")
	}
	assert.NotContains(t, apiErr.Message, "users_date_of_birth_past")
	assert.True(t, errors.Is(apiErr, model.ErrInvalidField))
}

func TestAuth_Register_StoreFailureIsInternal(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	f.users.On("GetByEmail", ctx, "ada@x.com").Return(model.User{}, assert.AnError).Once()

	_, _, err := f.auth.Register(ctx, validRegisterParams())
	apiErr := requireKind(t, err, apierror.KindInternal)
	assert.Equal(t, "Internal server error", apiErr.Message)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		stored := f.storedUser(t, "Abcdef1!")
		f.users.On("GetByEmail", ctx, "ada@x.com").Return(stored, nil).Once()

		user, pair, err := f.auth.Login(ctx, "ADA@x.com", "Abcdef1!")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("missing password", func(t *testing.T) {
		f := newAuthFixture(t, nil)

		_, _, err := f.auth.Login(ctx, "ada@x.com", "")
		apiErr := requireKind(t, err, apierror.KindValidation)
		assert.Equal(t, []string{"password"}, apiErr.Details)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		f.users.On("GetByEmail", ctx, "ada@x.com").Return(model.User{}, model.ErrNotFound).Once()

		_, _, err := f.auth.Login(ctx, "ada@x.com", "Abcdef1!")
		apiErr := requireKind(t, err, apierror.KindNotFound)
		assert.Equal(t, "User not found", apiErr.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		f.users.On("GetByEmail", ctx, "ada@x.com").Return(f.storedUser(t, "Abcdef1!"), nil).Once()

		_, pair, err := f.auth.Login(ctx, "ada@x.com", "Abcdef1?")
		apiErr := requireKind(t, err, apierror.KindUnauthorized)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
		assert.Empty(t, pair.AccessToken)
	})
}

func TestAuth_CurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("no token skips the store", func(t *testing.T) {
		f := newAuthFixture(t, nil)

		_, err := f.auth.CurrentUser(ctx, "")
		requireKind(t, err, apierror.KindUnauthenticated)
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("valid token", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		stored := f.storedUser(t, "Abcdef1!")
		access, _, err := f.manager.IssueAccess(model.TokenClaims{UserID: stored.ID, Email: stored.Email, DateOfBirth: stored.DateOfBirth})
		require.NoError(t, err)

		f.users.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()

		user, err := f.auth.CurrentUser(ctx, access)
		require.NoError(t, err)
		assert.Equal(t, stored.Public(), user)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		access, _, err := f.manager.IssueAccess(model.TokenClaims{UserID: uuid.New()})
		require.NoError(t, err)

		f.now = f.now.Add(2 * time.Minute)

		_, err = f.auth.CurrentUser(ctx, access)
		apiErr := requireKind(t, err, apierror.KindUnauthenticated)
		assert.Equal(t, apierror.CodeTokenExpired, apiErr.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		refresh, _, err := f.manager.IssueRefresh(model.TokenClaims{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = f.auth.CurrentUser(ctx, refresh)
		apiErr := requireKind(t, err, apierror.KindUnauthenticated)
		assert.Equal(t, apierror.CodeInvalidToken, apiErr.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		id := uuid.New()
		access, _, err := f.manager.IssueAccess(model.TokenClaims{UserID: id})
		require.NoError(t, err)

		f.users.On("GetByID", ctx, id).Return(model.User{}, model.ErrNotFound).Once()

		_, err = f.auth.CurrentUser(ctx, access)
		requireKind(t, err, apierror.KindNotFound)
	})
}

func TestAuth_Refresh_Stateless(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, nil)
	id := uuid.New()

	oldRefresh, oldClaims, err := f.manager.IssueRefresh(model.TokenClaims{UserID: id, Email: "ada@x.com"})
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour)

	pair, err := f.auth.Refresh(ctx, oldRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, oldRefresh, pair.RefreshToken)
	assert.NotEqual(t, oldClaims.JTI, pair.RefreshClaims.JTI)
	assert.Equal(t, id, pair.RefreshClaims.UserID)
	assert.Equal(t, f.now.Add(24*time.Hour), pair.RefreshExpiresAt)

	// Without a ledger the old token keeps working until it expires.
	_, err = f.auth.Refresh(ctx, oldRefresh)
	require.NoError(t, err)
}

func TestAuth_Refresh_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		_, err := f.auth.Refresh(ctx, "")
		requireKind(t, err, apierror.KindUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		refresh, _, err := f.manager.IssueRefresh(model.TokenClaims{UserID: uuid.New()})
		require.NoError(t, err)

		f.now = f.now.Add(25 * time.Hour)

		pair, err := f.auth.Refresh(ctx, refresh)
		requireKind(t, err, apierror.KindUnauthorized)
		assert.Empty(t, pair.AccessToken)
		assert.Empty(t, pair.RefreshToken)
	})

	t.Run("access token presented", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		access, _, err := f.manager.IssueAccess(model.TokenClaims{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = f.auth.Refresh(ctx, access)
		requireKind(t, err, apierror.KindUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		_, err := f.auth.Refresh(ctx, "garbage")
		requireKind(t, err, apierror.KindUnauthorized)
	})
}

func TestAuth_Refresh_LedgerRevokesOldToken(t *testing.T) {
	ctx := context.Background()
	ledger := servermocks.NewRefreshTokenStore(t)
	f := newAuthFixture(t, ledger)

	var recorded []model.RefreshToken
	ledger.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		recorded = append(recorded, args.Get(1).(model.RefreshToken))
	}).Return(nil)

	stored := f.storedUser(t, "Abcdef1!")
	f.users.On("GetByEmail", ctx, "ada@x.com").Return(stored, nil).Once()

	_, first, err := f.auth.Login(ctx, "ada@x.com", "Abcdef1!")
	require.NoError(t, err)
	require.Len(t, recorded, 1)

	ledger.On("GetByJTI", ctx, recorded[0].JTI).Return(recorded[0], nil).Once()
	ledger.On("Rotate", ctx, recorded[0].JTI, mock.Anything).Run(func(args mock.Arguments) {
		recorded = append(recorded, args.Get(2).(model.RefreshToken))
	}).Return(nil).Once()

	second, err := f.auth.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.Len(t, recorded, 2)
	require.NotNil(t, recorded[1].RotatedFromJTI)
	assert.Equal(t, recorded[0].JTI, *recorded[1].RotatedFromJTI)
	assert.Equal(t, second.RefreshClaims.JTI, recorded[1].JTI)

	revoked := recorded[0]
	revokedAt := f.now
	revoked.RevokedAt = &revokedAt
	ledger.On("GetByJTI", ctx, recorded[0].JTI).Return(revoked, nil).Once()

	_, err = f.auth.Refresh(ctx, first.RefreshToken)
	requireKind(t, err, apierror.KindUnauthorized)
}

func TestAuth_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("stateless is a no-op", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		require.NoError(t, f.auth.Logout(ctx, "anything"))
	})

	t.Run("ledger revokes presented token", func(t *testing.T) {
		ledger := servermocks.NewRefreshTokenStore(t)
		f := newAuthFixture(t, ledger)

		refresh, claims, err := f.manager.IssueRefresh(model.TokenClaims{UserID: uuid.New()})
		require.NoError(t, err)
		ledger.On("RevokeByJTI", ctx, claims.JTI).Return(nil).Once()

		require.NoError(t, f.auth.Logout(ctx, refresh))
	})

	t.Run("ledger failure is swallowed", func(t *testing.T) {
		ledger := servermocks.NewRefreshTokenStore(t)
		f := newAuthFixture(t, ledger)

		require.NoError(t, f.auth.Logout(ctx, "garbage"))
		ledger.AssertNotCalled(t, "RevokeByJTI", mock.Anything, mock.Anything)
	})
}
