package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sineWave(freqHz, fs float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freqHz * float64(i) / fs)
	}
	return x
}

func rms(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func TestButterworthLowpass_PassAndStop(t *testing.T) {
	const fs = 8000.0
	lp := ButterworthLowpass(4, 200, fs)

	low := sineWave(50, fs, 4000)
	high := sineWave(2000, fs, 4000)

	lowOut := lp.FiltFilt(low)
	highOut := lp.FiltFilt(high)

	assert.Greater(t, rms(lowOut), 0.8*rms(low))
	assert.Less(t, rms(highOut), 0.2*rms(high))
}

func TestButterworthHighpass_PassAndStop(t *testing.T) {
	const fs = 8000.0
	hp := ButterworthHighpass(4, 1000, fs)

	low := sineWave(50, fs, 4000)
	high := sineWave(3000, fs, 4000)

	assert.Less(t, rms(hp.FiltFilt(low)), 0.2*rms(low))
	assert.Greater(t, rms(hp.FiltFilt(high)), 0.8*rms(high))
}

func TestButterworthBandpass_PassesBandRejectsOutside(t *testing.T) {
	const fs = 8000.0
	bp := ButterworthBandpass(4, 800, 1200, fs)

	inBand := sineWave(1000, fs, 4000)
	belowBand := sineWave(100, fs, 4000)
	aboveBand := sineWave(3000, fs, 4000)

	assert.Greater(t, rms(bp.FiltFilt(inBand)), 0.7*rms(inBand))
	assert.Less(t, rms(bp.FiltFilt(belowBand)), 0.2*rms(belowBand))
	assert.Less(t, rms(bp.FiltFilt(aboveBand)), 0.2*rms(aboveBand))
}
