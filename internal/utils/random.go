package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateOpaqueToken returns n bytes of cryptographically secure random
// data encoded as hex. Used for the persisted password-reset tokens, which
// are intentionally not part of the signed-token scheme.
func GenerateOpaqueToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
