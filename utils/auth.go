package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
)

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSessionToken returns a new opaque bearer token: 20 random bytes
// (160 bits of entropy), base32-encoded in lowercase without padding.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to read token bytes: %w", err)
	}
	return strings.ToLower(tokenEncoding.EncodeToString(bytes)), nil
}

// SessionIDFromToken derives the non-secret session identifier stored in
// the session table: the lowercase hex SHA-256 digest of the raw token.
func SessionIDFromToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
