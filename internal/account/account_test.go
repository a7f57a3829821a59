package account

import (
	"context"
	"testing"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/database/dbtest"
	"gamehub/backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret"

func newService(t *testing.T) *Service {
	t.Helper()
	return New(dbtest.New(t), secret, WithHashCost(bcrypt.MinCost))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, " Ann ", "Ann@Example.com", "secret1")
	require.NoError(t, err)
	assert.NotZero(t, registered.User.ID)
	assert.Equal(t, "Ann", registered.User.Name)
	assert.Equal(t, "ann@example.com", registered.User.Email)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Ann&background=random", registered.User.Avatar)
	assert.NotEqual(t, "secret1", registered.User.PasswordHash)

	id, err := jwt.ParseToken(registered.Token, secret)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, id)

	loggedIn, err := svc.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		field    string
	}{
		{name: "missing name", userName: "", email: "a@example.com", password: "secret1"},
		{name: "missing email", userName: "Ann", email: " ", password: "secret1"},
		{name: "missing password", userName: "Ann", email: "a@example.com", password: ""},
		{name: "bad email", userName: "Ann", email: "not-an-email", password: "secret1", field: "email"},
		{name: "display name email", userName: "Ann", email: "Ann <a@example.com>", password: "secret1", field: "email"},
		{name: "short password", userName: "Ann", email: "a@example.com", password: "12345", field: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			require.ErrorIs(t, err, apperror.ErrValidation)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ann", "ann@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ann", "ANN@example.com", "secret2")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLoginFailures(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "Ann", "ann@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ann@example.com", "wrong-pass")
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
	wrongPassword := err.Error()

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
	assert.Equal(t, wrongPassword, err.Error(), "unknown email and wrong password look the same")

	_, err = svc.Login(ctx, "", "secret1")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestGetUser(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	s, err := svc.Register(ctx, "Ann", "ann@example.com", "secret1")
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, s.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	_, err = svc.GetUser(ctx, 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
