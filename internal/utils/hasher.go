package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash generates a SHA-256 hash of the input string
func Hash(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// Fingerprint hashes parts after trimming and lower-casing them, so that
// resubmitting the same form with different casing or padding collides.
func Fingerprint(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.Join(strings.Fields(p), " "))
	}
	return Hash(strings.Join(normalized, "\x00"))
}
