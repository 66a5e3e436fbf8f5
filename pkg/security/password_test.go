package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(4)

	digest, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", digest)

	assert.True(t, hasher.Verify("correct horse battery", digest))
	assert.False(t, hasher.Verify("wrong password!", digest))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLongPasswordsTruncateConsistently(t *testing.T) {
	hasher := NewBcryptHasher(4)

	long := strings.Repeat("a", 100)
	digest, err := hasher.Hash(long)
	require.NoError(t, err)

	// Hash and verify truncate identically, so the full long password and
	// its first 72 bytes both verify.
	assert.True(t, hasher.Verify(long, digest))
	assert.True(t, hasher.Verify(long[:72], digest))
	assert.False(t, hasher.Verify(long[:71], digest))
}

func TestVerifyMalformedDigest(t *testing.T) {
	hasher := NewBcryptHasher(4)

	assert.False(t, hasher.Verify("whatever-password", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Verify("whatever-password", ""))
}

func TestInvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(-1)

	digest, err := hasher.Hash("valid password")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("valid password", digest))
}
