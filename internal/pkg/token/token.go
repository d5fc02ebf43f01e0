// Package token generates human-shareable random invite tokens.
package token

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

const rawBytes = 10

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewInviteToken returns a token of the form XXXX-XXXX-XXXX-XXXX drawn from
// 80 bits of crypto/rand entropy.
func NewInviteToken() (string, error) {
	buf := make([]byte, rawBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	encoded := encoding.EncodeToString(buf)

	groups := make([]string, 0, len(encoded)/4)
	for i := 0; i < len(encoded); i += 4 {
		groups = append(groups, encoded[i:i+4])
	}
	return strings.Join(groups, "-"), nil
}

// Normalize upper-cases a user supplied token and trims surrounding spaces.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
