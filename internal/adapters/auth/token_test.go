package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	token, err := issuer.Issue("user-1", "asha", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWT_Verify_Errors(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	t.Run("wrong secret", func(t *testing.T) {
		token, err := issuer.Issue("user-1", "asha", time.Hour)
		require.NoError(t, err)

		_, err = NewJWTVerifier("other-secret").Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := issuer.Issue("user-1", "asha", -time.Minute)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := verifier.Verify("not.a.token")
		assert.Error(t, err)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(signed)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := issuer.Issue("", "asha", time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.Error(t, err)
	})
}
