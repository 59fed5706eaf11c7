package nck

import "fmt"

// ModemConfig holds the validated set of channel/modulation parameters
// shared by the Modulator and Demodulator. Build one with NewModemConfig;
// the zero value is not valid.
type ModemConfig struct {
	FS int     // sample rate of the channel, Hz
	CF float64 // center frequency of the modem passband, Hz (0 = baseband)
	BW float64 // one-sided bandwidth of the modem passband, Hz
	KR float64 // symbol rate, symbols/s
	M  int     // arity: 2, 3, or 4

	UseFFTShape bool // FFT bin-weighting noise shaping instead of direct-form FIR
	UseBarker   bool // Barker sync marker (binary NCK only)
	BarkerLen   int  // Barker sequence length, when UseBarker is set

	// w is the number of demodulation-rate samples per symbol, derived
	// from BW and KR at construction time (spec.md §3: "(2*BW)/KR rounds
	// to an integer >= 1").
	w int
}

// Option configures a ModemConfig at construction time.
type Option func(*ModemConfig)

// WithFFTShape selects the FFT bin-weighting noise-shaping path (spec.md
// §4.1's "FFT form") instead of the default direct-form 2-tap FIR.
func WithFFTShape() Option {
	return func(c *ModemConfig) { c.UseFFTShape = true }
}

// WithBarker enables a Barker-code sync marker of the given length.
// Only valid for binary (M=2) NCK.
func WithBarker(length int) Option {
	return func(c *ModemConfig) {
		c.UseBarker = true
		c.BarkerLen = length
	}
}

// NewModemConfig validates and builds a ModemConfig. It returns an error
// (rather than panicking) on any invariant violation, per spec.md §3:
//
//   - FS >= 2*(CF + BW/2)                      (Nyquist, passband fits)
//   - (2*BW)/KR is an integer >= 1              (w is well defined)
//   - CF+3*BW/2 <= FS/2 when 0 < CF < BW         (two-stage mix headroom)
func NewModemConfig(fs int, cf, bw, kr float64, m int, opts ...Option) (*ModemConfig, error) {
	if fs <= 0 {
		return nil, fmt.Errorf("nck: sample rate FS must be positive, got %d", fs)
	}
	if bw <= 0 {
		return nil, fmt.Errorf("nck: bandwidth BW must be positive, got %g", bw)
	}
	if kr <= 0 {
		return nil, fmt.Errorf("nck: symbol rate KR must be positive, got %g", kr)
	}
	if cf < 0 {
		return nil, fmt.Errorf("nck: center frequency CF must be non-negative, got %g", cf)
	}
	switch m {
	case 2, 3, 4:
	default:
		return nil, fmt.Errorf("nck: unsupported arity M=%d (must be 2, 3, or 4)", m)
	}

	if float64(fs) < 2*(cf+bw/2) {
		return nil, fmt.Errorf("nck: FS=%d violates Nyquist for CF=%g, BW=%g (need FS >= %g)", fs, cf, bw, 2*(cf+bw/2))
	}
	if cf > 0 && cf < bw && cf+1.5*bw > float64(fs)/2 {
		return nil, fmt.Errorf("nck: two-stage mix headroom violated: CF+1.5*BW=%g exceeds FS/2=%g", cf+1.5*bw, float64(fs)/2)
	}

	wf := (2 * bw) / kr
	w := int(wf + 0.5)
	if w < 1 || !almostInteger(wf) {
		return nil, fmt.Errorf("nck: (2*BW)/KR=%g is not an integer >= 1", wf)
	}

	c := &ModemConfig{FS: fs, CF: cf, BW: bw, KR: kr, M: m, w: w}
	for _, opt := range opts {
		opt(c)
	}

	if c.UseBarker && c.M != 2 {
		return nil, fmt.Errorf("nck: Barker sync is only defined for binary (M=2) NCK, got M=%d", c.M)
	}
	if c.UseBarker {
		if _, ok := barkerTable[c.BarkerLen]; !ok {
			return nil, fmt.Errorf("nck: unsupported Barker length %d", c.BarkerLen)
		}
	}

	return c, nil
}

// almostInteger reports whether v is within floating-point tolerance of
// its nearest integer.
func almostInteger(v float64) bool {
	r := v - float64(int(v+0.5))
	if r < 0 {
		r = -r
	}
	return r < 1e-9
}

// SymbolSamples returns the number of demodulation-rate samples spanned by
// one symbol (spec.md's w = (2*BW)/KR).
func (c *ModemConfig) SymbolSamples() int { return c.w }

// invertBinary reports whether the binary hue map must be flipped to
// compensate for spectral inversion introduced by upconversion, per
// ncklib.py's modulate (`if self.CF != 0: b = 1-b`, unconditional on CF
// being positive): both the single-stage (CF >= BW) and two-stage
// (0 < CF < BW) mix paths fold the spectrum, so the flip applies to any
// CF > 0. This is a distinct condition from twoStageMix: the modulator's
// hue flip and the demodulator's negate-r1 flag are not the same gate.
func (c *ModemConfig) invertBinary() bool {
	return c.CF > 0
}

// twoStageMix reports whether modulation/demodulation needs the two-stage
// up/down mixing path (0 < CF < BW) as opposed to a single bandpass stage
// (CF >= BW) or no mixing at all (CF == 0).
func (c *ModemConfig) twoStageMix() bool {
	return c.CF > 0 && c.CF < c.BW
}
