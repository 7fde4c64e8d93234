package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns an opaque record identifier (hex, 160 bits).
func NewID() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
