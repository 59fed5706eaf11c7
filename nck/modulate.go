package nck

import (
	"math"
	"math/rand"

	"github.com/tschudin/nck/nck/dsp"
)

// Modulator turns a symbol stream into an audio-rate waveform, per
// spec.md §4.2. Build one with NewModulator; it owns no state beyond its
// ModemConfig and RNG, so distinct Modulators never interfere.
type Modulator struct {
	cfg *ModemConfig
	rng *rand.Rand
	log *Logger
}

// NewModulator builds a Modulator for cfg, drawing noise from rng. rng
// must be supplied (and seeded, if determinism is wanted) by the caller;
// see spec.md §9 on reproducibility. log may be nil.
func NewModulator(cfg *ModemConfig, rng *rand.Rand, log *Logger) *Modulator {
	return &Modulator{cfg: cfg, rng: rng, log: log}
}

// Modulate maps symbols (each in [0, cfg.M)) to a real-valued waveform at
// cfg.FS, including leading/trailing ramp symbols and any CF upmixing.
func (mod *Modulator) Modulate(symbols []int) []float64 {
	c := mod.cfg
	w := c.w
	invert := c.invertBinary()

	sig := make([]float64, 0, (len(symbols)+2)*w)
	sig = append(sig, gateNoise(mod.rng, w, c.UseFFTShape, rampUpGate)...)
	for _, s := range symbols {
		hue := hueForSymbol(c.M, s, invert)
		sig = append(sig, generateNoise(mod.rng, hue, w, c.UseFFTShape)...)
	}
	sig = append(sig, gateNoise(mod.rng, w, c.UseFFTShape, rampDownGate)...)

	mod.log.Debug("modulated baseband", "symbols", len(symbols), "samples", len(sig))

	tmpFS := c.BW
	switch {
	case c.CF == 0:
		// baseband output; tmpFS already set to BW.
	case c.twoStageMix():
		tmpFS1 := float64(c.FS)/2 - c.BW/2
		sig = dsp.Resample(sig, int(float64(len(sig))*tmpFS1/c.BW))
		mixInPlace(sig, tmpFS1, 2*tmpFS1)
		tmpFS2 := tmpFS1 - (c.CF + c.BW/2)
		mixInPlace(sig, tmpFS2, 2*tmpFS1)
		tmpFS3 := c.CF + c.BW/2
		sig = dsp.Resample(sig, int(float64(len(sig))*tmpFS3/tmpFS1))
		tmpFS = tmpFS3
	default:
		tmpFS = c.CF + c.BW/2
		sig = dsp.Resample(sig, int(float64(len(sig))*tmpFS/c.BW))
		mixInPlace(sig, tmpFS, 2*tmpFS)
	}

	out := dsp.Resample(sig, int(float64(c.FS)*float64(len(sig))/(2*tmpFS)))
	mod.log.Debug("modulated audio", "samples", len(out), "fs", c.FS)
	return out
}

// mixInPlace multiplies x by a real carrier cos(2*pi*freqHz*i/sampleRate).
func mixInPlace(x []float64, freqHz, sampleRate float64) {
	for i := range x {
		x[i] *= math.Cos(2 * math.Pi * freqHz * float64(i) / sampleRate)
	}
}

// gate is a raised-cosine envelope applied over a ramp symbol's w samples.
type gate func(i, w int) float64

func rampUpGate(i, w int) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(w)))
}

func rampDownGate(i, w int) float64 {
	return 0.5 * (math.Cos(math.Pi*float64(i)/float64(w)) - 1)
}

// gateNoise generates w samples of white noise, shaped by g, per spec.md
// §4.2 steps 2 and 4 (ramp-up/ramp-down symbols).
func gateNoise(rng *rand.Rand, w int, useFFT bool, g gate) []float64 {
	n := generateNoise(rng, White, w, useFFT)
	out := make([]float64, w)
	for i := range out {
		out[i] = n[i] * g(i, w)
	}
	return out
}
