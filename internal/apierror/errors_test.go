package apierror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want Kind
	}{
		{name: "api error", in: NewErrEmailIsTaken("a@b.c"), want: KindConflict},
		{name: "wrapped api error", in: fmt.Errorf("outer: %w", NewErrUserNotFound()), want: KindNotFound},
		{name: "plain error", in: errors.New("boom"), want: KindInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.in))
		})
	}
}

func TestAPIError_UnwrapAndMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("db down")
	err := NewErrInternalServerError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "db down")

	apiErr, ok := As(fmt.Errorf("wrap: %w", err))
	require.True(t, ok)
	assert.Equal(t, "Internal server error", apiErr.Message)
}

func TestTokenErrorCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CodeTokenExpired, NewErrAuthorizationTokenExpired(nil).Code)
	assert.Equal(t, CodeInvalidToken, NewErrInvalidAuthorizationToken(nil).Code)
	assert.Equal(t, KindUnauthenticated, NewErrMissingAuthorizationToken().Kind)
	assert.Equal(t, string(KindUnauthenticated), NewErrMissingAuthorizationToken().Code)
}

func TestPasswordPolicyKeepsEveryViolation(t *testing.T) {
	t.Parallel()

	err := NewErrPasswordPolicy([]string{"a", "b", "c"})
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, []string{"a", "b", "c"}, err.Details)
}

func TestRejectedByStoreKeepsCauseOutOfDetails(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("failed to create user: invalid field: users_email_key")
	err := NewErrRejectedByStore(cause)

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, []string{"One or more fields have invalid values."}, err.Details)
	assert.ErrorIs(t, err, cause)
}
