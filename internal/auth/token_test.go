package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/SD-18/irs-backend/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "DC2021CSE0456",
		Role:     domain.RoleStudent,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "DC2021CSE0456", claims.Username)
	require.Equal(t, domain.RoleStudent, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not.a.token")
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	expired := expiredToken(t, tm.secret)
	_, err := tm.ParseToken(expired)
	require.Error(t, err)
}

func TestDecodeTokenSkipsVerification(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	// Decode returns claims even for a token Parse rejects.
	expired := expiredToken(t, tm.secret)
	claims := tm.DecodeToken(expired)
	require.NotNil(t, claims)
	require.Equal(t, "user-1", claims.UserID)

	require.Nil(t, tm.DecodeToken("garbage"))
}

func expiredToken(t *testing.T, secret []byte) string {
	t.Helper()
	claims := &Claims{
		UserID:   "user-1",
		Username: "DC2021CSE0456",
		Role:     domain.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}
