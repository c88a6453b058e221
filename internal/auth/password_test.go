package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordNeverEqualsPlaintext(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)
	require.True(t, strings.HasPrefix(hash, "$2"), "bcrypt hashes are self-describing")
}

func TestHashPasswordFreshSaltPerCall(t *testing.T) {
	first, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, ComparePassword(hash, "secret1"))
	require.Error(t, ComparePassword(hash, "wrong"))
	require.Error(t, ComparePassword("not-a-hash", "secret1"))
}
