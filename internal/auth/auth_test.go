// internal/auth/auth_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuseball/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	require.NoError(t, Init())

	id := models.PlayerIdentity{
		ID:            42,
		Name:          "alice",
		Emoji:         3,
		CountryCode:   "PL",
		Authenticated: true,
		XP:            120,
	}

	token, err := CreateToken(id)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	require.NoError(t, Init())

	_, err := VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsForeignKey(t *testing.T) {
	require.NoError(t, Init())
	token, err := CreateToken(models.PlayerIdentity{ID: 7, Name: "bob"})
	require.NoError(t, err)

	// Rotating the key pair invalidates previously issued tokens.
	require.NoError(t, Init())
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsMissingIdentity(t *testing.T) {
	require.NoError(t, Init())
	token, err := CreateToken(models.PlayerIdentity{})
	require.NoError(t, err)

	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("hunter2!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same input")
	require.NoError(t, err)
	b, err := HashPassword("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "$argon2id$nope")
	assert.ErrorIs(t, err, ErrInvalidHash)
}
