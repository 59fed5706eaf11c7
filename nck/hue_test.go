package nck

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHueComplementarity is a statistical check (spec.md §8) that reddish
// and blueish noise carry opposite-signed lag-1 correlation while white
// noise sits near zero, over a large batch of synthesized blocks.
func TestHueComplementarity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const trials = 1000
	const w = 300

	var redSum, blueSum, whiteSum float64
	for i := 0; i < trials; i++ {
		red := generateNoise(rng, Reddish, w, false)
		blue := generateNoise(rng, Blueish, w, false)
		white := generateNoise(rng, White, w, false)

		redSum += lag1(red)
		blueSum += lag1(blue)
		whiteSum += math.Abs(lag1(white))
	}

	redMean := redSum / trials
	blueMean := blueSum / trials
	whiteAbsMean := whiteSum / trials

	assert.Greater(t, redMean, 0.0)
	assert.Less(t, blueMean, 0.0)
	assert.Less(t, whiteAbsMean, redMean)
	assert.Less(t, whiteAbsMean, -blueMean)
}

// lag1 computes the unnormalized lag-1 autocorrelation of v, for test
// verification independent of the streaming estimator under test.
func lag1(v []float64) float64 {
	var sum float64
	for i := 1; i < len(v); i++ {
		sum += v[i] * v[i-1]
	}
	return sum
}
