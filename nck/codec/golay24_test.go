package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGolay_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := drawBits(t, 12, "m")
		cw := Golay{}.Encode(m)
		require.Len(t, cw, 24)
		ok, got := Golay{}.Decode(cw)
		assert.True(t, ok)
		assert.Equal(t, m, got)
	})
}

func TestGolay_SingleBitCorrection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := drawBits(t, 12, "m")
		i := rapid.IntRange(0, 23).Draw(t, "i")
		cw := Golay{}.Encode(m)
		cw[i] ^= 1
		ok, got := Golay{}.Decode(cw)
		assert.True(t, ok)
		assert.Equal(t, m, got)
	})
}

// TestGolay_TripleFlip covers the 0x5A3 fixture from spec.md §8 scenario 3:
// encode m, flip bits 0/11/23, decode recovers m.
func TestGolay_TripleFlip(t *testing.T) {
	m := intToBits12(0x5A3)
	cw := Golay{}.Encode(m)
	cw[0] ^= 1
	cw[11] ^= 1
	cw[23] ^= 1
	ok, got := Golay{}.Decode(cw)
	assert.True(t, ok)
	assert.Equal(t, m, got)
}

func TestGolay_ThreeBitCorrection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := drawBits(t, 12, "m")
		i, j, k := distinctTriple(t, 24)

		cw := Golay{}.Encode(m)
		cw[i] ^= 1
		cw[j] ^= 1
		cw[k] ^= 1
		ok, got := Golay{}.Decode(cw)
		assert.True(t, ok)
		assert.Equal(t, m, got)
	})
}

// distinctTriple draws three pairwise-distinct indices in [0,n) by drawing
// offsets and folding them into the gaps left by the earlier picks.
func distinctTriple(t *rapid.T, n int) (int, int, int) {
	i := rapid.IntRange(0, n-1).Draw(t, "i")
	j := rapid.IntRange(0, n-2).Draw(t, "j")
	if j >= i {
		j++
	}
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	k := rapid.IntRange(0, n-3).Draw(t, "k")
	if k >= lo {
		k++
	}
	if k >= hi {
		k++
	}
	return i, j, k
}

func intToBits12(v int) []int {
	bits := make([]int, 12)
	for i := 0; i < 12; i++ {
		bits[11-i] = (v >> i) & 1
	}
	return bits
}
