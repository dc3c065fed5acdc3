package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken(42, "guest@example.com", RoleUser, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.Sub)
	assert.Equal(t, "guest@example.com", claims.Email)
	assert.Equal(t, RoleUser, claims.Role)
	assert.False(t, claims.IsAdmin())
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := NewAccessToken(1, "a@b.com", RoleUser, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessToken(1, "a@b.com", RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "another-secret")
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestAdminRoles(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleOwner} {
		token, err := NewAccessToken(7, "admin@example.com", role, testSecret, time.Hour)
		require.NoError(t, err)

		claims, err := Parse(token, testSecret)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin())
	}
}
