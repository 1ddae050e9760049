package authenticator_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/pkg/authenticator"
)

type accessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, accessToken{ID: "user1", Username: "leo"})
	require.NoError(t, err)

	var got accessToken
	require.NoError(t, engine.Verify(token, &got))
	require.Equal(t, accessToken{ID: "user1", Username: "leo"}, got)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(-time.Second, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, engine.Verify(token, &msg))
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine("secret").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, authenticator.NewTokenEngine("other").Verify(token, &msg))
}

func TestJWTForeignTokens(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	var msg string

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	require.Error(t, engine.Verify(foreign, &msg))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer: "yatube",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	require.Error(t, engine.Verify(unsigned, &msg))
}

func TestPassword(t *testing.T) {
	hashed, err := authenticator.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hashed)
	require.True(t, authenticator.CheckPassword(hashed, "s3cret-pass"))
	require.False(t, authenticator.CheckPassword(hashed, "wrong"))
}
