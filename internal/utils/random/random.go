// Package random produces cryptographically secure identifiers.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// CharsetUpperHex is the alphabet of invitation codes.
const CharsetUpperHex = "0123456789ABCDEF"

// UpperHex returns exactly length uppercase hex characters drawn from crypto/rand.
func UpperHex(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)[:length]), nil
}

// IsFrom reports whether s is non-empty and uses only characters from charset.
func IsFrom(s, charset string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(charset, r) {
			return false
		}
	}
	return true
}
