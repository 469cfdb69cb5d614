package services

import (
	"strings"
	"testing"
	"time"

	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	token, err := svc.GenerateToken("0xabc")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", claims.Identity)
	assert.Equal(t, "0xabc", claims.Subject)
	assert.Equal(t, "credential-vault", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_GenerateToken_EmptyIdentity(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	_, err := svc.GenerateToken("")

	assert.ErrorIs(t, err, vault.ErrIdentityRequired)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	first, err := svc.GenerateToken("a")
	require.NoError(t, err)
	second, err := svc.GenerateToken("a")
	require.NoError(t, err)

	c1, err := svc.ValidateAccessToken(first.AccessToken)
	require.NoError(t, err)
	c2, err := svc.ValidateAccessToken(second.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWTService_ValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Minute).GenerateToken("a")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Minute).ValidateAccessToken(token.AccessToken)

	assert.Error(t, err)
}

func TestJWTService_ValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)
	token, err := svc.GenerateToken("a")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token.AccessToken)

	assert.Error(t, err)
}

func TestJWTService_ValidateAccessToken_Malformed(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)

	_, err := svc.ValidateAccessToken("not.a.token")

	assert.Error(t, err)
}

func TestJWTService_ValidateAccessToken_WrongIssuer(t *testing.T) {
	secret := "test-secret"
	now := time.Now()
	claims := Claims{
		Identity: "a",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			Issuer:    "someone-else",
			Subject:   "a",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWTService(secret, time.Minute).ValidateAccessToken(signed)

	assert.Error(t, err)
}

func TestJWTService_ValidateAccessToken_IdentityMismatch(t *testing.T) {
	secret := "test-secret"
	now := time.Now()
	claims := Claims{
		Identity: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			Issuer:    "credential-vault",
			Subject:   "mallory",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWTService(secret, time.Minute).ValidateAccessToken(signed)

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid identity"))
}

func TestJWTService_ValidateAccessToken_RejectsNoneAlg(t *testing.T) {
	claims := Claims{
		Identity: "a",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:  "credential-vault",
			Subject: "a",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Minute).ValidateAccessToken(signed)

	assert.Error(t, err)
}
