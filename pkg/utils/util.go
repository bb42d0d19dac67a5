package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SecretKeySize is the key length PASETO v2 local tokens are sealed with.
const SecretKeySize = 32

// NewSecretKey returns a random PASETO key in the form PARLOUR_PASETO_SECRET expects.
func NewSecretKey() (string, error) {
	key := make([]byte, SecretKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("read random key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
