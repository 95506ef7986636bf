// Package token generates exit-validation codes for active parking sessions.
package token

import (
	"crypto/rand"
	"fmt"
)

// Generator produces exit-validation tokens. It is an interface so tests can
// supply deterministic tokens; uniqueness against active sessions is
// enforced by the occupancy engine, not here.
type Generator interface {
	Token() (string, error)
}

// Tokens are short uppercase codes so a guard can type one in when the
// camera cannot read the QR image.
const (
	prefix   = "QR"
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLen  = 7
)

type randomGenerator struct{}

// NewGenerator returns the default random token generator.
func NewGenerator() Generator {
	return randomGenerator{}
}

func (randomGenerator) Token() (string, error) {
	buf := make([]byte, codeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return prefix + string(buf), nil
}
