package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "secret123"))
}

func TestInitGoogleOAuthConfig(t *testing.T) {
	cfg := InitGoogleOAuthConfig("id", "secret", "http://localhost/cb")
	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "http://localhost/cb", cfg.RedirectURL)
	assert.Len(t, cfg.Scopes, 2)
}
