// Package code generates fixed-width numeric verification codes.
package code

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/go-signup-verify/internal/domain"
)

// DefaultDigits is the width of codes sent in verification emails.
const DefaultDigits = 6

// maxDigits keeps 10^digits inside int64.
const maxDigits = 18

// Generator draws codes uniformly from [10^(n-1), 10^n-1], so every code has
// exactly n digits and never starts with zero.
type Generator struct {
	digits int
	low    *big.Int
	span   *big.Int
	reader io.Reader
}

// Option customises a Generator.
type Option func(*Generator)

// WithReader replaces crypto/rand.Reader. Only tests should need this.
func WithReader(r io.Reader) Option {
	return func(g *Generator) { g.reader = r }
}

func NewGenerator(digits int, opts ...Option) (*Generator, error) {
	if digits < 1 || digits > maxDigits {
		return nil, fmt.Errorf("code length %d outside [1,%d]: %w", digits, maxDigits, domain.ErrBadRequest)
	}
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	high := new(big.Int).Mul(low, big.NewInt(10))
	g := &Generator{
		digits: digits,
		low:    low,
		span:   new(big.Int).Sub(high, low),
		reader: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Digits returns the code width.
func (g *Generator) Digits() int { return g.digits }

// Generate returns a new code. crypto/rand.Reader never fails, so a read error
// can only come from an injected reader and is treated as a programming error.
func (g *Generator) Generate() string {
	n, err := rand.Int(g.reader, g.span)
	if err != nil {
		panic("code: random source failed: " + err.Error())
	}
	return n.Add(n, g.low).String()
}
