package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apiContext "github.com/dtroode/taskmanager-server/internal/api/http/context"
	"github.com/dtroode/taskmanager-server/internal/api/http/cookie"
	"github.com/dtroode/taskmanager-server/internal/apierror"
	"github.com/dtroode/taskmanager-server/internal/mocks"
	"github.com/dtroode/taskmanager-server/internal/model"
	"github.com/dtroode/taskmanager-server/internal/testutil"
)

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		token      string
		claims     model.TokenClaims
		err        error
		wantStatus int
		wantCode   string
		wantNext   bool
	}{
		{
			name:       "valid token",
			token:      "good",
			claims:     model.TokenClaims{UserID: userID, Kind: model.TokenKindAccess},
			wantStatus: http.StatusNoContent,
			wantNext:   true,
		},
		{
			name:       "missing cookie",
			err:        apierror.NewErrMissingAuthorizationToken(),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthenticated",
		},
		{
			name:       "expired token",
			token:      "old",
			err:        apierror.NewErrAuthorizationTokenExpired(model.ErrTokenExpired),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "token_expired",
		},
		{
			name:       "invalid token",
			token:      "forged",
			err:        apierror.NewErrInvalidAuthorizationToken(model.ErrTokenBadSignature),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "invalid_token",
		},
		{
			name:       "unexpected error",
			token:      "good",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			authenticator := mocks.NewAuthenticator(t)
			authenticator.On("Authenticate", mock.Anything, tt.token).Return(tt.claims, tt.err)

			cm := apiContext.NewManager()
			m := NewAuthenticate(authenticator, cm, testutil.MakeNoopLogger())

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, ok := cm.GetClaimsFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, userID, got.UserID)
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v0/tasks", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: cookie.AccessTokenName, Value: tt.token})
			}
			rec := httptest.NewRecorder()

			m.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), `"code":"`+tt.wantCode+`"`)
			}
		})
	}
}
