package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/restopos/pkg/auth"
)

func claimsFor(t *testing.T, userID uint) *auth.Claims {
	t.Helper()
	token, _, err := auth.GenerateToken(userID)
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	return claims
}

func TestRevokeDenylistsOnlyThatToken(t *testing.T) {
	ctx := context.Background()
	first := claimsFor(t, 1)
	second := claimsFor(t, 1)

	require.NoError(t, auth.Revoke(ctx, first))

	revoked, err := auth.IsRevoked(ctx, first)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = auth.IsRevoked(ctx, second)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	claims := &auth.Claims{UserID: 1}
	claims.ID = "expired-token"
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	require.NoError(t, auth.Revoke(ctx, claims))
	revoked, err := auth.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeNeedsTokenID(t *testing.T) {
	assert.Error(t, auth.Revoke(context.Background(), &auth.Claims{UserID: 1}))
	assert.Error(t, auth.Revoke(context.Background(), nil))
}

func TestClaimsContext(t *testing.T) {
	assert.Nil(t, auth.ClaimsFrom(context.Background()))

	claims := claimsFor(t, 3)
	ctx := auth.WithClaims(context.Background(), claims)
	assert.Same(t, claims, auth.ClaimsFrom(ctx))
}
