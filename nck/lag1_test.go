package nck

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLag1Estimator_MatchesNaive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 64).Draw(t, "n")
		w := rapid.IntRange(n, n+16).Draw(t, "w")
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = rapid.Float64Range(-1, 1).Draw(t, "x")
		}

		est := newLag1Estimator(w)
		var last float64
		for _, x := range samples {
			last = est.push(x)
		}
		want := naiveLag1(samples)
		assert.InDelta(t, want, last, 1e-9)
	})
}

// TestLag1SignRule covers spec.md §8's "Lag-1 sign rule": for a
// synthesized reddish block the median r1 is positive, for
// blueish it's negative, and white sits closer to zero than both.
func TestLag1SignRule(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const w = 300

	redMedian := medianLag1(rng, Reddish, w)
	blueMedian := medianLag1(rng, Blueish, w)
	whiteMedian := medianLag1(rng, White, w)

	assert.Greater(t, redMedian, 0.0)
	assert.Less(t, blueMedian, 0.0)
	assert.Less(t, math.Abs(whiteMedian), redMedian)
	assert.Less(t, math.Abs(whiteMedian), -blueMedian)
}

func medianLag1(rng *rand.Rand, hue Hue, w int) float64 {
	const trials = 200
	vals := make([]float64, trials)
	for i := range vals {
		block := generateNoise(rng, hue, w, false)
		est := newLag1Estimator(w)
		var last float64
		for _, x := range block {
			last = est.push(x)
		}
		vals[i] = last
	}
	sort.Float64s(vals)
	return vals[len(vals)/2]
}
