package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weeklisthq/weeklist-api/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTService(config.AuthConfig{JWTSecret: "too-short", TokenLifetimeMinutes: 60})
		assert.Error(t, err)
	})
}

func TestJWTRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestJWTValidateErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		svc := newTestJWTService(t)

		_, err := svc.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()
		svc := newTestJWTService(t)

		_, err := svc.ValidateToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		t.Parallel()
		svc := newTestJWTService(t)

		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "ffffffffffffffffffffffffffffffff",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)

		token, err := other.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		svc := newTestJWTService(t)

		issued := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
		svc.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		// Past the lifetime plus the allowed clock skew.
		svc.timeFunc = func() time.Time { return issued.Add(time.Hour + 3*time.Minute) }
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("expiry within clock skew still validates", func(t *testing.T) {
		t.Parallel()
		svc := newTestJWTService(t)

		issued := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
		svc.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		svc.timeFunc = func() time.Time { return issued.Add(time.Hour + time.Minute) }
		_, err = svc.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})
}
