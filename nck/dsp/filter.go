package dsp

import (
	"math"
	"math/cmplx"
	"sort"
)

// Biquad is one second-order section of a digital IIR filter, in the
// standard direct-form-II-transposed normalization (a0 == 1):
//
//	y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
type Biquad struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// apply runs one biquad over x, forward in time, returning a new slice.
func (s Biquad) apply(x []float64) []float64 {
	y := make([]float64, len(x))
	var z1, z2 float64 // DF2T delay elements
	for i, v := range x {
		out := s.B0*v + z1
		z1 = s.B1*v - s.A1*out + z2
		z2 = s.B2*v - s.A2*out
		y[i] = out
	}
	return y
}

// Cascade is an ordered list of biquads (an "SOS" array in scipy's
// terminology), the representation spec.md names explicitly
// ("signal.butter(..., output='sos')") for numerical robustness over a
// single high-order transfer function.
type Cascade []Biquad

// FiltFilt applies the cascade forward and then backward, giving the
// zero-phase response §4.3/§4.4 of spec.md requires for symbol-boundary
// alignment. Edge transients are reduced by odd-reflecting a short pad
// onto both ends before filtering, mirroring scipy's default sosfiltfilt
// padding.
func (c Cascade) FiltFilt(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	pad := 3 * len(c) * 2
	if pad >= len(x) {
		pad = len(x) - 1
	}
	if pad < 0 {
		pad = 0
	}

	padded := oddReflectPad(x, pad)
	y := padded
	for _, s := range c {
		y = s.apply(y)
	}
	reverse(y)
	for _, s := range c {
		y = s.apply(y)
	}
	reverse(y)

	return y[pad : pad+len(x)]
}

func oddReflectPad(x []float64, pad int) []float64 {
	n := len(x)
	out := make([]float64, n+2*pad)
	for i := 0; i < pad; i++ {
		out[i] = 2*x[0] - x[minInt(pad-i, n-1)]
		out[n+pad+i] = 2*x[n-1] - x[maxInt(n-2-i, 0)]
	}
	copy(out[pad:pad+n], x)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// butterworthPrototype returns the n poles of a unity-cutoff analog
// Butterworth lowpass prototype, lying on the left half of the unit
// circle in the s-plane.
func butterworthPrototype(n int) []complex128 {
	poles := make([]complex128, n)
	for k := 0; k < n; k++ {
		theta := math.Pi * (2*float64(k) + float64(n) + 1) / (2 * float64(n))
		poles[k] = complex(math.Cos(theta), math.Sin(theta))
	}
	return poles
}

// prewarp converts a digital cutoff frequency (Hz) at sample rate fs into
// the equivalent analog (rad/s) frequency for the bilinear transform.
func prewarp(fHz, fs float64) float64 {
	return 2 * fs * math.Tan(math.Pi*fHz/fs)
}

func bilinear(p complex128, fs float64) complex128 {
	k := complex(2*fs, 0)
	return (k + p) / (k - p)
}

// conjugatePairs splits a set of complex numbers that is closed under
// conjugation (no real elements) into [p, conj(p)] pairs, by pairing the
// pole with the i-th largest imaginary part with the pole with the i-th
// smallest. Butterworth prototypes of even order are symmetric about the
// real axis, so this always finds an exact partner.
func conjugatePairs(vals []complex128) [][2]complex128 {
	sorted := append([]complex128(nil), vals...)
	sort.Slice(sorted, func(i, j int) bool { return imag(sorted[i]) > imag(sorted[j]) })

	n := len(sorted)
	pairs := make([][2]complex128, n/2)
	for i := 0; i < n/2; i++ {
		pairs[i] = [2]complex128{sorted[i], sorted[n-1-i]}
	}
	return pairs
}

// biquadFromPair builds one real-coefficient biquad from a conjugate pole
// pair and (optionally) a conjugate zero pair.
func biquadFromPair(polePair [2]complex128, zeroPair *[2]complex128) Biquad {
	p1, p2 := polePair[0], polePair[1]
	a1 := -real(p1 + p2)
	a2 := real(p1 * p2)

	if zeroPair == nil {
		return Biquad{B0: 1, B1: 0, B2: 0, A1: a1, A2: a2}
	}
	z1, z2 := zeroPair[0], zeroPair[1]
	return Biquad{B0: 1, B1: -real(z1 + z2), B2: real(z1 * z2), A1: a1, A2: a2}
}

// normalizeGain scales a cascade so its magnitude response at refHz is
// unity, the way scipy.signal.butter normalizes its designs.
func normalizeGain(c Cascade, fs, refHz float64) {
	g := cascadeResponse(c, refHz, fs)
	if g == 0 {
		return
	}
	scale := 1 / g
	c[0].B0 *= scale
	c[0].B1 *= scale
	c[0].B2 *= scale
}

func cascadeResponse(c Cascade, fHz, fs float64) float64 {
	w := 2 * math.Pi * fHz / fs
	z := cmplx.Exp(complex(0, w))
	h := complex(1, 0)
	for _, s := range c {
		num := complex(s.B0, 0) + complex(s.B1, 0)/z + complex(s.B2, 0)/(z*z)
		den := complex(1, 0) + complex(s.A1, 0)/z + complex(s.A2, 0)/(z*z)
		h *= num / den
	}
	return cmplx.Abs(h)
}

// ButterworthLowpass designs an order-n (n even) lowpass Butterworth
// filter with -3dB cutoff cutoffHz at sample rate fs, returned as a
// second-order-section cascade.
func ButterworthLowpass(n int, cutoffHz, fs float64) Cascade {
	wc := prewarp(cutoffHz, fs)
	proto := butterworthPrototype(n)
	poles := make([]complex128, n)
	for i, p := range proto {
		poles[i] = bilinear(complex(wc, 0)*p, fs)
	}

	pairs := conjugatePairs(poles)
	sections := make(Cascade, len(pairs))
	for i, pp := range pairs {
		sections[i] = biquadFromPair(pp, nil)
	}
	normalizeGain(sections, fs, 0)
	return sections
}

// ButterworthHighpass designs an order-n (n even) highpass Butterworth
// filter with -3dB cutoff cutoffHz at sample rate fs.
func ButterworthHighpass(n int, cutoffHz, fs float64) Cascade {
	wc := prewarp(cutoffHz, fs)
	proto := butterworthPrototype(n)
	poles := make([]complex128, n)
	for i, p := range proto {
		poles[i] = bilinear(complex(wc, 0)/p, fs)
	}

	polePairs := conjugatePairs(poles)
	// every analog zero from an all-pole lowpass->highpass transform sits
	// at s=0, which the bilinear transform maps to the digital z=1 zero.
	onesPair := [2]complex128{1, 1}
	sections := make(Cascade, len(polePairs))
	for i, pp := range polePairs {
		sections[i] = biquadFromPair(pp, &onesPair)
	}
	normalizeGain(sections, fs, fs/2)
	return sections
}

// ButterworthBandpass designs an order-n (prototype order; the realized
// filter has 2n poles, matching scipy.signal.butter(n, [lo,hi], 'bandpass')
// semantics, which spec.md §4.3 invokes directly as "10th-order
// Butterworth") bandpass filter spanning [loHz, hiHz] at sample rate fs.
func ButterworthBandpass(n int, loHz, hiHz, fs float64) Cascade {
	wl := prewarp(loHz, fs)
	wh := prewarp(hiHz, fs)
	bw := wh - wl
	w0 := math.Sqrt(wl * wh)

	proto := butterworthPrototype(n)
	protoPairs := conjugatePairs(proto)

	sections := make(Cascade, 0, 2*len(protoPairs))
	dcNyquist := [2]complex128{1, -1}
	for _, pp := range protoPairs {
		p := pp[0] // process only one of the conjugate prototype pair; its
		// partner's band poles are exactly the conjugates of these, by
		// construction of the quadratic below.
		bwp := complex(bw, 0) * p
		disc := cmplx.Sqrt(bwp*bwp - 4*complex(w0*w0, 0))
		p1 := (bwp + disc) / 2
		p2 := (bwp - disc) / 2

		z1 := bilinear(p1, fs)
		z2 := bilinear(p2, fs)
		sections = append(sections,
			biquadFromPair([2]complex128{z1, cmplx.Conj(z1)}, &dcNyquist),
			biquadFromPair([2]complex128{z2, cmplx.Conj(z2)}, &dcNyquist),
		)
	}
	if n%2 == 1 {
		// the odd prototype's real pole at s=-1 maps to one more pair of
		// band poles, realized as a single section.
		bwp := complex(-bw, 0)
		disc := cmplx.Sqrt(bwp*bwp - 4*complex(w0*w0, 0))
		z1 := bilinear((bwp+disc)/2, fs)
		z2 := bilinear((bwp-disc)/2, fs)
		sections = append(sections, biquadFromPair([2]complex128{z1, z2}, &dcNyquist))
	}
	centerHz := math.Sqrt(loHz * hiHz)
	normalizeGain(sections, fs, centerHz)
	return sections
}
