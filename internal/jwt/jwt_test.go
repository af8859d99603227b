package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("super-secret", time.Hour)

	tok, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	userID, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("secret", -1*time.Second)

	tok, err := svc.GenerateToken("u1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTService("right-secret", time.Hour).GenerateToken("u2")
	require.NoError(t, err)

	_, err = NewJWTService("wrong-secret", time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService("k", time.Hour).ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{
		Subject:   "u3",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("k", time.Hour).ValidateToken(tok)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_MissingSubject(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("k", time.Hour)
	tok, err := svc.GenerateToken("")
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
