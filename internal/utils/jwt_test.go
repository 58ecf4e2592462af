package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT(7, "jdoe", true, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.False(t, claims.IsSuperuser)
	assert.NotEmpty(t, claims.ID, "token must carry a jti for revocation")
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestValidateJWTRejectsTampered(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT(7, "jdoe", false, false)
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("secret-one")
	token, err := GenerateJWT(7, "jdoe", false, false)
	require.NoError(t, err)

	SetJWTSecret("secret-two")
	_, err = ValidateJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")
	_, err := ValidateJWT("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
