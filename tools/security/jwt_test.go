package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundtrip(t *testing.T) {
	opts := DefaultOptions([]byte("secret"))

	token, exp, err := Generate(opts, "u1", "admin")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := Verify(opts, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _, err := Generate(DefaultOptions([]byte("secret-a")), "u1", "standard")
	require.NoError(t, err)

	_, err = Verify(DefaultOptions([]byte("secret-b")), token)
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	opts := Options{Secret: []byte("secret"), Alg: "HS256", TTL: -time.Minute}
	token, _, err := Generate(opts, "u1", "standard")
	require.NoError(t, err)

	_, err = Verify(DefaultOptions([]byte("secret")), token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestUnsupportedAlg(t *testing.T) {
	opts := Options{Secret: []byte("secret"), Alg: "RS256"}
	_, _, err := Generate(opts, "u1", "standard")
	assert.Error(t, err)
}
