package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// GenerateSecureToken returns n random bytes, base64url encoded without padding.
func GenerateSecureToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// RequestID keeps a caller supplied id when it looks sane and makes one up
// otherwise.
func RequestID(incoming string) string {
	if incoming != "" && len(incoming) <= 64 && isPrintableASCII(incoming) {
		return incoming
	}
	return uuid.NewString()
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
