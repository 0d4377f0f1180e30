package client_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetsight/streetsight/client"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "u1",
		"exp": jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSessionStartsUnauthenticated(t *testing.T) {
	s := client.NewSession()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestSessionWithValidJWT(t *testing.T) {
	s := client.NewSession()
	s.SetToken(signedToken(t, time.Now().Add(time.Hour)))

	assert.True(t, s.IsAuthenticated())
	assert.NotEmpty(t, s.Token())
}

func TestSessionWithExpiredJWT(t *testing.T) {
	s := client.NewSession()
	s.SetToken(signedToken(t, time.Now().Add(-time.Hour)))

	assert.False(t, s.IsAuthenticated())
}

func TestSessionWithOpaqueToken(t *testing.T) {
	s := client.NewSession()
	s.SetToken("not-a-jwt")

	// opaque tokens never expire locally; the server is the judge
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "not-a-jwt", s.Token())
}

func TestSessionClear(t *testing.T) {
	s := client.NewSession()
	s.SetToken(signedToken(t, time.Now().Add(time.Hour)))
	s.Clear()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}
