package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

func newAuthFixture(payload *ports.TokenPayload) (*AuthService, *memoryUsers, *memoryTokens) {
	users := newMemoryUsers()
	tokens := &memoryTokens{byHash: map[string]*domain.RefreshToken{}}
	svc := NewAuthService(users, tokens, &stubVerifier{payload: payload}, AuthConfig{
		JWTSecret:  "test-secret",
		OwnerEmail: "Owner@Example.com",
	})
	return svc, users, tokens
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("regular user", func(t *testing.T) {
		svc, users, _ := newAuthFixture(&ports.TokenPayload{Subject: "sub-1", Email: "fan@example.com", Name: "Fan"})

		access, refresh, err := svc.LoginWithGoogle(ctx, "valid_token")
		require.NoError(t, err)
		assert.NotEmpty(t, refresh)

		actor, err := svc.ParseAccessToken(access)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, actor.Role)
		assert.Equal(t, users.byOpenID["sub-1"].ID, actor.UserID)
		assert.Equal(t, "google", users.byOpenID["sub-1"].LoginMethod)
	})

	t.Run("owner is promoted to admin", func(t *testing.T) {
		svc, _, _ := newAuthFixture(&ports.TokenPayload{Subject: "sub-2", Email: "owner@example.com", Name: "Owner"})

		access, _, err := svc.LoginWithGoogle(ctx, "valid_token")
		require.NoError(t, err)

		actor, err := svc.ParseAccessToken(access)
		require.NoError(t, err)
		assert.True(t, actor.IsAdmin())
	})

	t.Run("invalid google token", func(t *testing.T) {
		svc, _, _ := newAuthFixture(&ports.TokenPayload{Subject: "sub-3"})

		_, _, err := svc.LoginWithGoogle(ctx, "bad")
		assert.Error(t, err)
	})
}

func TestRefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens := newAuthFixture(&ports.TokenPayload{Subject: "sub-1", Email: "fan@example.com"})

	_, refresh, err := svc.LoginWithGoogle(ctx, "valid_token")
	require.NoError(t, err)

	access, sameRefresh, err := svc.RefreshAccessToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, refresh, sameRefresh)
	_, err = svc.ParseAccessToken(access)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, refresh))
	for _, tok := range tokens.byHash {
		assert.True(t, tok.Revoked)
	}

	_, _, err = svc.RefreshAccessToken(ctx, refresh)
	assert.EqualError(t, err, "refresh token revoked")

	_, _, err = svc.RefreshAccessToken(ctx, "unknown")
	assert.EqualError(t, err, "refresh token not found")

	assert.NoError(t, svc.Logout(ctx, "unknown"))
}

func TestParseAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture(nil)
	userID := uuid.New()

	sign := func(secret string, claims jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}

	t.Run("valid admin token", func(t *testing.T) {
		actor, err := svc.ParseAccessToken(sign("test-secret", jwt.MapClaims{
			"sub":  userID.String(),
			"role": "admin",
			"exp":  time.Now().Add(time.Minute).Unix(),
		}))
		require.NoError(t, err)
		assert.Equal(t, userID, actor.UserID)
		assert.Equal(t, domain.RoleAdmin, actor.Role)
	})

	t.Run("missing role defaults to user", func(t *testing.T) {
		actor, err := svc.ParseAccessToken(sign("test-secret", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Minute).Unix(),
		}))
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, actor.Role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := svc.ParseAccessToken(sign("other", jwt.MapClaims{"sub": userID.String()}))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := svc.ParseAccessToken(sign("test-secret", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Minute).Unix(),
		}))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("bad subject", func(t *testing.T) {
		_, err := svc.ParseAccessToken(sign("test-secret", jwt.MapClaims{"sub": "nope"}))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
