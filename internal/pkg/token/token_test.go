package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenFormat = regexp.MustCompile(`^[A-Z2-7]{4}-[A-Z2-7]{4}-[A-Z2-7]{4}-[A-Z2-7]{4}$`)

func TestNewInviteToken_Format(t *testing.T) {
	tok, err := NewInviteToken()
	require.NoError(t, err)
	assert.Regexp(t, tokenFormat, tok)
}

func TestNewInviteToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok, err := NewInviteToken()
		require.NoError(t, err)
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token %s", tok)
		seen[tok] = struct{}{}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ABCD-EFGH", Normalize("  abcd-efgh "))
}
