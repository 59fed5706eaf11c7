package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawBits(t *rapid.T, n int, label string) []int {
	bits := make([]int, n)
	for i := range bits {
		bits[i] = rapid.IntRange(0, 1).Draw(t, label)
	}
	return bits
}

func TestHamming_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := drawBits(t, 4, "m")
		cw := Hamming{}.Encode(m)
		require.Len(t, cw, 8)
		ok, got := Hamming{}.Decode(cw)
		assert.True(t, ok)
		assert.Equal(t, m, got)
	})
}

func TestHamming_SingleBitCorrection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := drawBits(t, 4, "m")
		i := rapid.IntRange(0, 7).Draw(t, "i")
		cw := Hamming{}.Encode(m)
		cw[i] ^= 1
		ok, got := Hamming{}.Decode(cw)
		assert.True(t, ok)
		assert.Equal(t, m, got)
	})
}

func TestHamming_DataFromCode(t *testing.T) {
	m := []int{1, 0, 1, 1}
	cw := Hamming{}.Encode(m)
	assert.Equal(t, m, Hamming{}.DataFromCode(cw))
}
