package nck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestInterleaverBijection covers spec.md §8's "Interleaver bijection"
// invariant: unmap(map(x)) == x for every supported N, and scenario 6
// (N=96 applied twice through unmap returns the identity list).
func TestInterleaverBijection(t *testing.T) {
	for _, n := range []int{1, 2, 8, 12, 48, 91, 96, 174, 256} {
		it := NewInterleaver(n)
		bits := make([]int, n)
		for i := range bits {
			bits[i] = i
		}
		mapped := it.Map(bits)
		assert.Equal(t, bits, it.Unmap(mapped), "n=%d", n)
	}
}

func TestInterleaverBijectionProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(t, "n")
		bits := make([]int, n)
		for i := range bits {
			bits[i] = rapid.IntRange(0, 1).Draw(t, "b")
		}
		it := NewInterleaver(n)
		assert.Equal(t, bits, it.Unmap(it.Map(bits)))
	})
}
