package auth

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

const defaultPBKDF2Iterations = 600000

// VerifyPassword checks password against a stored hash. Supported formats:
// werkzeug "pbkdf2:<digest>[:iterations]$salt$hex", werkzeug "scrypt:n:r:p$salt$hex"
// and bcrypt "$2a$", "$2b$", "$2y$".
func VerifyPassword(encoded, password string) bool {
	if strings.HasPrefix(encoded, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	}

	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	expected, err := hex.DecodeString(want)
	if err != nil || len(expected) == 0 {
		return false
	}

	var got []byte
	switch {
	case strings.HasPrefix(method, "pbkdf2:"):
		got = derivePBKDF2(method, salt, password, len(expected))
	case strings.HasPrefix(method, "scrypt:"):
		got = deriveScrypt(method, salt, password, len(expected))
	default:
		return false
	}

	return got != nil && subtle.ConstantTimeCompare(got, expected) == 1
}

func derivePBKDF2(method, salt, password string, keyLen int) []byte {
	args := strings.Split(method, ":")
	if len(args) < 2 || len(args) > 3 {
		return nil
	}

	var newHash func() hash.Hash
	switch args[1] {
	case "sha256":
		newHash = sha256.New
	case "sha512":
		newHash = sha512.New
	default:
		return nil
	}

	iterations := defaultPBKDF2Iterations
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n <= 0 {
			return nil
		}
		iterations = n
	}

	return pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLen, newHash)
}

func deriveScrypt(method, salt, password string, keyLen int) []byte {
	args := strings.Split(method, ":")
	if len(args) != 4 {
		return nil
	}

	params := make([]int, 3)
	for i, raw := range args[1:] {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil
		}
		params[i] = n
	}

	key, err := scrypt.Key([]byte(password), []byte(salt), params[0], params[1], params[2], keyLen)
	if err != nil {
		return nil
	}
	return key
}
