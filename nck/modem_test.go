package nck

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBinaryLoopback covers spec.md §8 scenario 1: a noiseless round trip
// through Modulator/Demodulator must recover the sent symbols exactly,
// and the audio length must match the expected frame duration.
func TestBinaryLoopback(t *testing.T) {
	cfg, err := NewModemConfig(6000, 1250, 500, 20, 2)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	symbols := make([]int, 48)
	for i := range symbols {
		symbols[i] = rng.Intn(2)
	}

	mod := NewModulator(cfg, rng, nil)
	audio := mod.Modulate(symbols)

	wantLen := float64(cfg.FS) * (2 + 48) * (2 * cfg.BW / cfg.KR) / (2 * cfg.BW)
	assert.InEpsilon(t, wantLen, float64(len(audio)), 0.05)

	demod := NewDemodulator(cfg, nil)
	result := demod.Demodulate(audio, 0)

	require.Len(t, result.Symbols, len(symbols))
	assert.Equal(t, symbols, result.Symbols)
}

// TestEndToEndHighSNR covers spec.md §8's "End-to-end at high SNR"
// invariant: at SNR=10dB with no ECC, a 48-bit random payload demodulates
// with zero errors over a batch of trials.
func TestEndToEndHighSNR(t *testing.T) {
	cfg, err := NewModemConfig(6000, 1250, 500, 20, 2)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(99))
	const trials = 100
	const snrDB = 10.0

	for trial := 0; trial < trials; trial++ {
		symbols := make([]int, 48)
		for i := range symbols {
			symbols[i] = rng.Intn(2)
		}

		mod := NewModulator(cfg, rng, nil)
		audio := mod.Modulate(symbols)
		audio = addNoiseAtSNR(rng, audio, snrDB)

		demod := NewDemodulator(cfg, nil)
		result := demod.Demodulate(audio, 0)

		require.Len(t, result.Symbols, len(symbols))
		assert.Equal(t, symbols, result.Symbols, "trial %d", trial)
	}
}

func addNoiseAtSNR(rng *rand.Rand, audio []float64, snrDB float64) []float64 {
	var pwrS float64
	for _, x := range audio {
		pwrS += x * x
	}
	noise := make([]float64, len(audio))
	var pwrN float64
	for i := range noise {
		noise[i] = 2*rng.Float64() - 1
		pwrN += noise[i] * noise[i]
	}
	x := 10*math.Log10(pwrS/pwrN) - snrDB
	scale := math.Sqrt(math.Pow(10, x/10))
	out := make([]float64, len(audio))
	for i := range audio {
		out[i] = audio[i] + noise[i]*scale
	}
	return out
}
