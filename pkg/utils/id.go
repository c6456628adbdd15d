package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID returns n random bytes hex-encoded.
func GenerateID(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
