package auth

import (
	"context"
	"testing"

	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	users := NewMemoryUserStore()
	svc := NewService(users)
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.RegisterRequest{Email: "  Ann@Example.com ", Password: "s3cret-pass", Name: " Ann "})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", reg.User.Email)
	assert.Equal(t, "Ann", reg.User.Name)
	assert.Empty(t, reg.User.Password, "hash never leaves the service")

	claims, err := utils.ParseJWT(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	stored, err := users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.Password)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "ANN@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "a@b.co", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, models.RegisterRequest{Email: "A@B.CO", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	svc := NewService(NewMemoryUserStore())
	ctx := context.Background()
	_, err := svc.Register(ctx, models.RegisterRequest{Email: "a@b.co", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "a@b.co", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@b.co", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
