package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("ops")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Operator)
}

func TestValidateGarbageToken(t *testing.T) {
	InitJWT("test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateWrongSecret(t *testing.T) {
	InitJWT("first-secret")
	token, err := GenerateToken("ops")
	require.NoError(t, err)

	InitJWT("second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
