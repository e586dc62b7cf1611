package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_UsesCost12(t *testing.T) {
	h, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "$2a$12$"), h)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, HashCost, cost)

	ok, err := CheckPassword(h, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckPassword(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := CheckPassword(string(h), "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// hashes produced by other bcrypt implementations use the $2b$ tag
	b := "$2b$" + strings.TrimPrefix(string(h), "$2a$")
	ok, err = CheckPassword(b, "right")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = CheckPassword("not-a-hash", "right")
	require.Error(t, err)
}
