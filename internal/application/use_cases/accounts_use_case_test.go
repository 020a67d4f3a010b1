package use_cases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
)

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	userID, err := env.facade.Register(ctx, "NewUser", "NewUser@gmail.com", "paypalname", "password")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	loggedIn, err := env.facade.Login(ctx, "NewUser", "password")
	require.NoError(t, err)
	assert.Equal(t, userID, loggedIn)

	// Login is stable across attempts.
	again, err := env.facade.Login(ctx, "NewUser", "password")
	require.NoError(t, err)
	assert.Equal(t, userID, again)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cases := []struct {
		name                          string
		username, email, paypal, pass string
		want                          error
	}{
		{"username", "", "a@b.c", "pp", "pw", domainErrors.ErrMissingUsername},
		{"email", "bob", "", "pp", "pw", domainErrors.ErrMissingEmail},
		{"paypal", "bob", "a@b.c", "", "pw", domainErrors.ErrMissingPayPal},
		{"password", "bob", "a@b.c", "pp", "", domainErrors.ErrMissingPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.facade.Register(ctx, tc.username, tc.email, tc.paypal, tc.pass)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, domainErrors.KindValidation, domainErrors.KindOf(err))
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.mustRegister(ctx, "bob")

	_, err := env.facade.Register(ctx, "bob", "other@example.com", "other-paypal", "secret")
	require.ErrorIs(t, err, domainErrors.ErrUsernameTaken)
	assert.Equal(t, domainErrors.KindConflict, domainErrors.KindOf(err))
}

func TestRegisterUsernameIsCaseSensitive(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.mustRegister(ctx, "bob")

	_, err := env.facade.Register(ctx, "Bob", "bob2@example.com", "bob2-paypal", "secret")
	require.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.mustRegister(ctx, "bob")

	_, err := env.facade.Login(ctx, "bob", "wrong")
	require.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	assert.Equal(t, domainErrors.KindAuth, domainErrors.KindOf(err))
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.facade.Login(context.Background(), "nobody", "pw")
	require.ErrorIs(t, err, domainErrors.ErrUserNotFound)
}

func TestGetUserDetails(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	userID := env.mustRegister(ctx, "bob")

	user, err := env.facade.GetUserDetails(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "bob-paypal", user.PayPal)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	_, err = env.facade.GetUserDetails(ctx, "")
	require.ErrorIs(t, err, domainErrors.ErrMissingUserID)

	_, err = env.facade.GetUserDetails(ctx, "usr_missing")
	require.ErrorIs(t, err, domainErrors.ErrUserNotFound)
}
