package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-service/internal/auth"
)

var testSecret = []byte("0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVW")

func TestTokenRoundTrip(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, 3*time.Hour)

	token, err := tokens.Issue("jane@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(3*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, 3*time.Hour)

	token, err := tokens.Issue("jane@x.com")
	require.NoError(t, err)

	// flip the last character of the signature
	flipped := token[:len(token)-1]
	if token[len(token)-1] == 'a' {
		flipped += "b"
	} else {
		flipped += "a"
	}

	_, err = tokens.Verify(flipped)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, 3*time.Hour)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := tokens.Verify(bad)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, bad)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenService(testSecret, 3*time.Hour)
	verifier := auth.NewTokenService([]byte("another-secret-entirely-another-secret-entirely-12345678901"), 3*time.Hour)

	token, err := issuer.Issue("jane@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, 3*time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{
		Email: "jane@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, 3*time.Hour)

	// backdate the claim directly instead of waiting out the TTL
	backdated := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: "jane@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	token, err := backdated.SignedString(testSecret)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestGenerateSecret(t *testing.T) {
	secret, err := auth.GenerateSecret(60)
	require.NoError(t, err)
	assert.Len(t, secret, 60)
	for _, b := range secret {
		assert.True(t, (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9'))
	}

	other, err := auth.GenerateSecret(60)
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}
