// Package pnr generates passenger name records: fixed-length uppercase
// alphanumeric strings drawn from a cryptographically strong source.
// Uniqueness is probabilistic only; no collision handling is attempted.
package pnr

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const DefaultLength = 6

type Generator struct {
	length int
}

// NewGenerator accepts a record-locator length of 6 or 8; anything else
// falls back to DefaultLength.
func NewGenerator(length int) *Generator {
	if length != 6 && length != 8 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate pnr: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
