package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/weeklisthq/weeklist-api/internal/config"
	"github.com/weeklisthq/weeklist-api/internal/domain"
	"github.com/weeklisthq/weeklist-api/internal/service"
	"github.com/weeklisthq/weeklist-api/internal/service/auth"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

func newUserService(t *testing.T) (*service.UserServiceImpl, *fakeUserStore) {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	users := newFakeUserStore()
	svc := service.NewUserService(users,
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewBcryptVerifier(),
		jwtService, nil)
	return svc, users
}

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("registers and returns a token", func(t *testing.T) {
		t.Parallel()
		svc, users := newUserService(t)

		user, token, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "password123", 28, "female", "9876543210")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Empty(t, user.Password, "plaintext must be cleared after hashing")
		assert.NotEmpty(t, user.HashedPassword)
		assert.NotEqual(t, "password123", user.HashedPassword)

		stored, err := users.GetByEmail(ctx, "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		svc, _ := newUserService(t)

		_, _, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "password123", 28, "female", "111")
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "Another", "asha@example.com", "password456", 30, "male", "222")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("duplicate mobile", func(t *testing.T) {
		t.Parallel()
		svc, _ := newUserService(t)

		_, _, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "password123", 28, "female", "111")
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "Another", "other@example.com", "password456", 30, "male", "111")
		assert.ErrorIs(t, err, store.ErrMobileExists)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		t.Parallel()
		svc, users := newUserService(t)

		_, _, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "short", 28, "female", "111")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Empty(t, users.users)
	})
}

func TestUserServiceLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	register := func(t *testing.T, svc *service.UserServiceImpl) {
		t.Helper()
		_, _, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "password123", 28, "female", "111")
		require.NoError(t, err)
	}

	t.Run("valid credentials return a token", func(t *testing.T) {
		t.Parallel()
		svc, _ := newUserService(t)
		register(t, svc)

		user, token, err := svc.Login(ctx, "asha@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "asha@example.com", user.Email)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		svc, _ := newUserService(t)

		_, _, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		svc, _ := newUserService(t)
		register(t, svc)

		_, _, err := svc.Login(ctx, "asha@example.com", "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
