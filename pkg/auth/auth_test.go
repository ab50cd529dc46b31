package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoPBKDF2 = "pbkdf2:sha256:150000$Xq7mK2pLr9TfWb3n$bde62d95e60270fb9bb64fe16f659b49ff5731c56496c11d399b1e7e76dba304"
	demoScrypt = "scrypt:32768:8:1$Vb8sQm2Ld$4b7aa0151583c046aed960c5aff38d923d2e6f3701c660274a620d912a747281dc4bc9c4bb6fa6859dce40f9d72db914cfd5a5175fcc20b749f8f1203aee748f"
	sha512Hash = "pbkdf2:sha512:1000$pepper42$72bdad5708b989f63c06c20d9baf2c1e3f085baf8ecf0ff7b2aea74be29cd0e33bd54c926e1e2aafd61e98cb9e799c512604831b88348fafcce508647e1cc34b"
)

func TestVerifyPassword_Werkzeug(t *testing.T) {
	assert.True(t, VerifyPassword(demoPBKDF2, "inventory-demo"))
	assert.False(t, VerifyPassword(demoPBKDF2, "inventory-demo "))
	assert.False(t, VerifyPassword(demoPBKDF2, ""))

	assert.True(t, VerifyPassword(sha512Hash, "s3cret!"))
	assert.False(t, VerifyPassword(sha512Hash, "s3cret"))

	assert.True(t, VerifyPassword(demoScrypt, "inventory-demo"))
	assert.False(t, VerifyPassword(demoScrypt, "wrong"))
}

func TestVerifyPassword_Bcrypt(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(string(hashed), "hunter2"))
	assert.False(t, VerifyPassword(string(hashed), "hunter3"))
}

func TestVerifyPassword_MalformedHashes(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"pbkdf2:sha256$salt",
		"pbkdf2:md5:1000$salt$abcd",
		"pbkdf2:sha256:zero$salt$abcd",
		"pbkdf2:sha256:1000$salt$not-hex",
		"scrypt:1:2$salt$abcd",
		"argon2:1$salt$abcd",
	} {
		assert.False(t, VerifyPassword(encoded, "anything"), encoded)
	}
}

func TestAuthenticator(t *testing.T) {
	a := NewAuthenticator([]string{"user1@example.com", " user2@example.com ", ""}, demoPBKDF2)

	assert.NoError(t, a.Authenticate("user1@example.com", "inventory-demo"))
	assert.NoError(t, a.Authenticate("user2@example.com", "inventory-demo"))
	assert.True(t, a.Allows("user1@example.com", "inventory-demo"))

	unknown := a.Authenticate("intruder@example.com", "inventory-demo")
	wrongPassword := a.Authenticate("user1@example.com", "nope")
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.Equal(t, unknown, wrongPassword)

	assert.ErrorIs(t, a.Authenticate("", ""), ErrInvalidCredentials)
	assert.ErrorIs(t, a.Authenticate("USER1@example.com", "inventory-demo"), ErrInvalidCredentials)
}
