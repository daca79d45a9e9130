package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOtpCode(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 64; i++ {
		code, err := generateOtpCode()
		require.NoError(t, err)

		// always six digits, zero padded
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit %q", code, r)
		}
		seen[code] = struct{}{}
	}

	// 64 draws out of a million colliding down to a handful would mean a
	// broken source
	assert.Greater(t, len(seen), 32)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", normalizeEmail("  User@Example.COM "))
	assert.Equal(t, "user@example.com", normalizeEmail("user@example.com"))
}
