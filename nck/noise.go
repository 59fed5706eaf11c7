package nck

import (
	"math"
	"math/rand"

	"github.com/tschudin/nck/nck/dsp"
)

// generateNoise produces one symbol-duration (w samples) of noise shaped
// to the given hue, per spec.md §4.1. It internally draws 2w i.i.d.
// uniform samples on [-1,1] and shapes them with either the direct-form
// 2-tap FIR (default) or the FFT bin-weighting form (useFFT), truncating
// the shaped 2w/2w-1 sample block down to w samples to discard filter-edge
// transients, then peak-normalizes.
//
// rng must be supplied by the caller (spec.md §9: the reference
// implementation does not seed its own RNG, so reproducible traces
// require the caller to own and seed the source).
func generateNoise(rng *rand.Rand, hue Hue, w int, useFFT bool) []float64 {
	switch {
	case hue.isWhite():
		return truncateNormalize(uniformNoise(rng, 2*w), w)
	case hue.isReddish():
		return shapedNoise(rng, w, useFFT, reddishWeight, lowpass)
	case hue.isBlueish():
		return shapedNoise(rng, w, useFFT, blueishWeight, highpass)
	default:
		f := math.Abs(1-hue.Fraction) / 2
		red := shapedNoise(rng, w, useFFT, reddishWeight, lowpass)
		blue := shapedNoise(rng, w, useFFT, blueishWeight, highpass)
		mix := make([]float64, w)
		wr, wb := math.Sqrt(f), math.Sqrt(1-f)
		for i := range mix {
			mix[i] = wr*red[i] + wb*blue[i]
		}
		dsp.PeakNormalize(mix)
		return mix
	}
}

func uniformNoise(rng *rand.Rand, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 2*rng.Float64() - 1
	}
	return x
}

func shapedNoise(rng *rand.Rand, w int, useFFT bool, fftWeight func(k, n int) float64, direct func([]float64) []float64) []float64 {
	wn := uniformNoise(rng, 2*w)
	var shaped []float64
	if useFFT {
		shaped = dsp.FFTShape(wn, fftWeight)
	} else {
		shaped = direct(wn)
	}
	return truncateNormalize(shaped, w)
}

func truncateNormalize(x []float64, w int) []float64 {
	out := append([]float64(nil), x[:w]...)
	dsp.PeakNormalize(out)
	return out
}

// lowpass is the "reddish" direct-form 2-tap FIR: out[i] = v[i] + v[i+1].
func lowpass(v []float64) []float64 {
	out := make([]float64, len(v)-1)
	for i := range out {
		out[i] = v[i] + v[i+1]
	}
	return out
}

// highpass is the "blueish" direct-form 2-tap FIR: out[i] = v[i] - v[i+1].
func highpass(v []float64) []float64 {
	out := make([]float64, len(v)-1)
	for i := range out {
		out[i] = v[i] - v[i+1]
	}
	return out
}

func reddishWeight(k, n int) float64 {
	return math.Abs(math.Cos(math.Pi * float64(k) / float64(n)))
}

func blueishWeight(k, n int) float64 {
	return math.Sin(math.Pi * float64(k) / float64(n))
}
