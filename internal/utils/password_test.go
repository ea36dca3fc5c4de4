package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	assert.NoError(t, err, "Hashing should not return an error")
	assert.NotEmpty(t, hash, "Hash should not be empty")
	assert.NotEqual(t, password, hash, "Hash must not equal the plaintext")

	assert.True(t, CheckPasswordHash(password, hash), "Correct password should verify")
	assert.False(t, CheckPasswordHash("wrong password", hash), "Wrong password should not verify")
	assert.False(t, CheckPasswordHash(password, "not-a-bcrypt-hash"), "Garbage hash should not verify")
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	// bcrypt salts every hash, so the same input should never collide.
	first, err := HashPassword("same-input")
	assert.NoError(t, err)
	second, err := HashPassword("same-input")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second, "Two hashes of the same password should differ")
}
