// Copyright (c) 2026 MangaVault. All rights reserved.
// Author: vu.hoanganh.dev@gmail.com

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

/*
TestTokenService_RoundTrip verifies that a generated token carries the
user id and role back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := NewTokenService(testSecret, "mangavault.app", time.Hour)
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "mangavault.app", claims.Issuer)

	// exp must be exactly iat + ttl.
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

/*
TestTokenService_EmptySecret verifies construction fails without a secret.
*/
func TestTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("", "mangavault.app", time.Hour)
	assert.Error(t, err)
}

/*
TestTokenService_Expired verifies that expiry surfaces as ErrTokenExpired,
distinct from other verification failures.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := NewTokenService(testSecret, "mangavault.app", time.Hour)
	require.NoError(t, err)

	// Issue a token two hours in the past so it is already expired.
	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := service.GenerateAccessToken("user-123", RoleUser)
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

/*
TestTokenService_WrongSecret verifies that a bad signature is rejected
as ErrTokenInvalid.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuer, err := NewTokenService(testSecret, "mangavault.app", time.Hour)
	require.NoError(t, err)

	verifier, err := NewTokenService("a-different-secret", "mangavault.app", time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken("user-123", RoleUser)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

/*
TestTokenService_Garbage verifies malformed input is ErrTokenInvalid.
*/
func TestTokenService_Garbage(t *testing.T) {
	service, err := NewTokenService(testSecret, "mangavault.app", time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
