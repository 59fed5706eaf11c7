package codec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestCRC14Fixture reproduces spec.md §8 scenario 2: an 82-bit input with
// bits set at {3,7,44,45,46,51,61,71} (zeros elsewhere) must produce the
// CRC-14 "11001111110101".
func TestCRC14Fixture(t *testing.T) {
	input := make([]int, 82)
	for _, pos := range []int{3, 7, 44, 45, 46, 51, 61, 71} {
		input[pos] = 1
	}
	got := CRC14(input)
	want := bitsFromString("11001111110101")
	assert.Equal(t, want, got)
}

func bitsFromString(s string) []int {
	bits := make([]int, len(s))
	for i, c := range s {
		if c == '1' {
			bits[i] = 1
		}
	}
	return bits
}

func TestFT8_EncodeDecodeRoundTrip(t *testing.T) {
	f := NewFT8()
	rapid.Check(t, func(t *rapid.T) {
		payload := drawBits(t, 77, "payload")
		cw := f.Encode(payload)
		require.Len(t, cw, 174)
		assert.Equal(t, 83, ParityCount(cw))

		llr := make([]float64, 174)
		for i, b := range cw {
			if b == 1 {
				llr[i] = -4.5
			} else {
				llr[i] = 4.5
			}
		}
		ok, a91 := f.Decode(llr, 50)
		assert.True(t, ok)
		assert.Equal(t, payload, a91[:77])
		assert.True(t, CheckCRC14(a91))
	})
}

// TestFT8_NearThreshold matches spec.md §8 scenario 5: corrupt up to 70 of
// 174 positions with random soft evidence, expect the decoder to converge
// for at least half of a batch of trials. This is a regression guard on
// decoder convergence behavior, not a hard bit-error-rate bound.
func TestFT8_NearThreshold(t *testing.T) {
	f := NewFT8()
	rng := rand.New(rand.NewSource(1))
	const trials = 40
	successes := 0
	for trial := 0; trial < trials; trial++ {
		payload := make([]int, 77)
		for i := range payload {
			payload[i] = rng.Intn(2)
		}
		cw := f.Encode(payload)

		llr := make([]float64, 174)
		for i, b := range cw {
			if b == 1 {
				llr[i] = -4.5
			} else {
				llr[i] = 4.5
			}
		}
		corrupt := 40 + rng.Intn(31) // up to 70
		perm := rng.Perm(174)[:corrupt]
		for _, idx := range perm {
			llr[idx] = (rng.Float64()*2 - 1) * 2.0
		}

		ok, a91 := f.Decode(llr, 100)
		if ok && equalInts(a91[:77], payload) {
			successes++
		}
	}
	assert.GreaterOrEqual(t, successes, trials/2)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
