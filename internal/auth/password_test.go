package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword([]byte("correct horse battery staple"))
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	ok, err := CheckPassword(hash, []byte("correct horse battery staple"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, []byte("wrong password"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	_, err := CheckPassword([]byte("not-a-bcrypt-hash"), []byte("pw"))
	require.Error(t, err)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	h1, err := HashPassword([]byte("pw"))
	require.NoError(t, err)
	h2, err := HashPassword([]byte("pw"))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "bcrypt salts must differ")
}
