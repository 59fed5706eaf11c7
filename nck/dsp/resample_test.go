package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResample_PreservesSineFrequencyContent(t *testing.T) {
	const fsIn = 8000.0
	const fsOut = 4000.0
	n := 4000
	x := sineWave(200, fsIn, n)

	out := Resample(x, int(float64(n)*fsOut/fsIn))

	assert.InEpsilon(t, rms(x), rms(out), 0.05)
}

func TestResample_IdentityWhenLengthUnchanged(t *testing.T) {
	x := sineWave(100, 8000, 500)
	out := Resample(x, len(x))
	require := assert.New(t)
	require.Len(out, len(x))
	for i := range x {
		require.InDelta(x[i], out[i], 1e-9)
	}
}

func TestPeakNormalize_ScalesToUnityPeak(t *testing.T) {
	x := []float64{1, -3, 2, 0.5}
	PeakNormalize(x)
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	assert.InDelta(t, 1.0, peak, 1e-9)
}

func TestPeakNormalize_LeavesSilenceUnchanged(t *testing.T) {
	x := []float64{0, 0, 0}
	PeakNormalize(x)
	assert.Equal(t, []float64{0, 0, 0}, x)
}
