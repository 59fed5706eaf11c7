package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLDPC96_DataFromCodeRoundTrip(t *testing.T) {
	l := NewLDPC96()
	rapid.Check(t, func(t *rapid.T) {
		m := drawBits(t, 50, "m")
		cw := l.Encode(m)
		require.Len(t, cw, 96)
		assert.Equal(t, m, l.DataFromCode(cw))
	})
}

func TestLDPC96_DecodeCleanChannel(t *testing.T) {
	l := NewLDPC96()
	rapid.Check(t, func(t *rapid.T) {
		m := drawBits(t, 50, "m")
		cw := l.Encode(m)
		llr := make([]float64, 96)
		for i, b := range cw {
			if b == 1 {
				llr[i] = -4.5
			} else {
				llr[i] = 4.5
			}
		}
		ok, got := l.Decode(llr, 50)
		assert.True(t, ok)
		assert.Equal(t, m, got)
	})
}

// TestLDPC96_ColumnWeight checks the deterministic construction gives
// every message column of H = [Q|I46] exactly weight 3 in Q.
func TestLDPC96_ColumnWeight(t *testing.T) {
	l := NewLDPC96()
	for c := 0; c < ldpc96K; c++ {
		w := 0
		for r := 0; r < ldpc96M; r++ {
			w += l.q[r][c]
		}
		assert.Equalf(t, 3, w, "column %d", c)
	}
}
