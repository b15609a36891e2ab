package code

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/go-signup-verify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator_RejectsBadLength(t *testing.T) {
	for _, n := range []int{-1, 0, 19} {
		_, err := NewGenerator(n)
		require.Error(t, err, "digits=%d", n)
		assert.True(t, errors.Is(err, domain.ErrBadRequest))
	}
}

func TestGenerate_DefaultWidthAndRange(t *testing.T) {
	g, err := NewGenerator(DefaultDigits)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Digits())

	for i := 0; i < 2000; i++ {
		c := g.Generate()
		require.Len(t, c, 6)
		n, err := strconv.Atoi(c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerate_LowestValueHasNoLeadingZero(t *testing.T) {
	g, err := NewGenerator(6, WithReader(bytes.NewReader(make([]byte, 64))))
	require.NoError(t, err)
	assert.Equal(t, "100000", g.Generate())
}

func TestGenerate_SingleDigit(t *testing.T) {
	g, err := NewGenerator(1)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		c := g.Generate()
		require.Len(t, c, 1)
		assert.NotEqual(t, "0", c)
	}
}

func TestGenerate_MaxWidth(t *testing.T) {
	g, err := NewGenerator(18)
	require.NoError(t, err)
	c := g.Generate()
	assert.Len(t, c, 18)
	assert.NotEqual(t, byte('0'), c[0])
}

func TestGenerate_NotConstant(t *testing.T) {
	g, err := NewGenerator(6)
	require.NoError(t, err)
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[g.Generate()] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestGenerate_BrokenReaderPanics(t *testing.T) {
	// 0xFF bytes always land above the span, so rand.Int keeps reading until EOF.
	g, err := NewGenerator(6, WithReader(bytes.NewReader(bytes.Repeat([]byte{0xFF}, 32))))
	require.NoError(t, err)
	assert.Panics(t, func() { g.Generate() })
}
