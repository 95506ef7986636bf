package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenShape(t *testing.T) {
	gen := NewGenerator()

	code, err := gen.Token()
	require.NoError(t, err)

	assert.Len(t, code, len(prefix)+codeLen)
	assert.True(t, strings.HasPrefix(code, prefix))
	for _, r := range code {
		assert.Contains(t, alphabet, string(r))
	}
	// Tokens are generated uppercase; validation matches case-sensitively.
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestTokensVary(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := gen.Token()
		require.NoError(t, err)
		seen[code] = true
	}
	// 36^7 possibilities; 200 draws colliding would indicate a broken source.
	assert.Greater(t, len(seen), 195)
}
