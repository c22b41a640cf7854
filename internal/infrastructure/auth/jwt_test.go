package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "storefront-test",
	})
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	tok, err := svc.GenerateAccessToken("admin", []string{RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Len(t, strings.Split(tok.Token, "."), 3)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.HasRole(RoleAdmin))
	assert.False(t, claims.HasRole("customer"))
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateAccessToken_UniqueIDs(t *testing.T) {
	svc := newTestJWTService()
	a, err := svc.GenerateAccessToken("admin", nil)
	require.NoError(t, err)
	b, err := svc.GenerateAccessToken("admin", nil)
	require.NoError(t, err)

	ca, err := svc.ValidateAccessToken(a.Token)
	require.NoError(t, err)
	cb, err := svc.ValidateAccessToken(b.Token)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	tok, err := svc.GenerateAccessToken("admin", nil)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(tok.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_NotYetValid(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	tok, err := svc.GenerateAccessToken("admin", nil)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(tok.Token)
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	tok, err := newTestJWTService().GenerateAccessToken("admin", nil)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Minute,
		Issuer:                "storefront-test",
	})
	_, err = other.ValidateAccessToken(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	tok, err := newTestJWTService().GenerateAccessToken("admin", nil)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Minute,
		Issuer:                "someone-else",
	})
	_, err = other.ValidateAccessToken(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	svc := newTestJWTService()
	for _, raw := range []string{"", "abc", "a.b.c"} {
		_, err := svc.ValidateAccessToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestValidateAccessToken_WrongTokenType(t *testing.T) {
	svc := newTestJWTService()
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			Subject:   "admin",
			Issuer:    "storefront-test",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType: "refresh",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateAccessToken_RejectsNoneAlgorithm(t *testing.T) {
	svc := newTestJWTService()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "x", Subject: "admin", Issuer: "storefront-test"},
		TokenType:        TokenTypeAccess,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_RemainingTTL(t *testing.T) {
	now := time.Now()
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute))}}
	assert.InDelta(t, time.Minute.Seconds(), c.RemainingTTL(now).Seconds(), 1)
	assert.Zero(t, c.RemainingTTL(now.Add(time.Hour)))
	assert.Zero(t, (&Claims{}).RemainingTTL(now))
}
