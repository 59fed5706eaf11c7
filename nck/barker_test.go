package nck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarkerSequence_KnownLengths(t *testing.T) {
	for _, n := range []int{7, 11, 13, 14, 21, 22, 26, 33, 39} {
		seq, ok := BarkerSequence(n)
		require.True(t, ok, "length %d", n)
		assert.Len(t, seq, n)
		for _, v := range seq {
			assert.Contains(t, []int{-1, 1}, v)
		}
	}
}

func TestBarkerSequence_UnsupportedLength(t *testing.T) {
	_, ok := BarkerSequence(9)
	assert.False(t, ok)
}

func TestBarkerCorrelate_FindsExactMatch(t *testing.T) {
	tmpl, _ := barkerSequence(13)
	signs := make([]int, 50)
	for i := range signs {
		signs[i] = 1
	}
	copy(signs[20:], tmpl)

	offset, score := barkerCorrelate(signs, 13)
	assert.Equal(t, 20, offset)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestLocateBarkerInStream_FindsExpandedMatch(t *testing.T) {
	const w = 10
	tmpl, _ := barkerSequence(7)
	r1 := make([]float64, 200)
	start := 50
	for i, t := range tmpl {
		for j := 0; j < w; j++ {
			r1[start+i*w+j] = float64(t)
		}
	}

	offset, score := locateBarkerInStream(r1, w, 7)
	assert.Equal(t, start, offset)
	assert.Greater(t, score, 0.0)
}

func TestBarkerTimingError(t *testing.T) {
	assert.InDelta(t, 0.5, barkerTimingError(105, 100, 10), 1e-9)
	assert.InDelta(t, 0.0, barkerTimingError(100, 100, 10), 1e-9)
}
