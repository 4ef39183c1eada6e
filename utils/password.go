package utils

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 10000
	pbkdf2KeyLength  = 64
	saltLength       = 128
)

// GetSalt returns a fresh random salt, base64-encoded for storage.
func GetSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to read salt bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// HashPassword derives a PBKDF2-SHA512 key from the plaintext password and
// the stored salt, returned hex-encoded.
func HashPassword(plaintext, salt string) string {
	key := pbkdf2.Key([]byte(plaintext), []byte(salt), pbkdf2Iterations, pbkdf2KeyLength, sha512.New)
	return hex.EncodeToString(key)
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash. Comparison is constant-time.
func VerifyPassword(plaintext, salt, hash string) bool {
	computed := HashPassword(plaintext, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
