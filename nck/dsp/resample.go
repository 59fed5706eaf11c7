// Package dsp provides the resampling and filtering primitives the NCK
// modem and demodulator are built on: FFT-domain resampling, IIR
// (Butterworth) filter design with zero-phase forward/backward filtering,
// and the FFT-domain colored-noise shaping used by an alternate noise
// generator path.
package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Resample changes the length of x to outLen using FFT-domain
// zero-padding/truncation, the same technique as scipy.signal.resample
// (and therefore as the NCK reference implementation, which calls that
// function throughout modulate/demodulate for every rate change).
//
// When outLen == len(x) the input is returned unchanged (as a copy).
func Resample(x []float64, outLen int) []float64 {
	n := len(x)
	if n == 0 || outLen <= 0 {
		return make([]float64, outLen)
	}
	if outLen == n {
		out := make([]float64, n)
		copy(out, x)
		return out
	}

	fft := fourier.NewCmplxFFT(n)
	seq := make([]complex128, n)
	for i, v := range x {
		seq[i] = complex(v, 0)
	}
	spec := fft.Coefficients(nil, seq)

	resized := resizeSpectrum(spec, outLen)

	ifft := fourier.NewCmplxFFT(outLen)
	timeDomain := ifft.Sequence(nil, resized)

	out := make([]float64, outLen)
	scale := float64(outLen) / float64(n)
	for i, c := range timeDomain {
		out[i] = real(c) * scale
	}
	return out
}

// resizeSpectrum maps an N-point two-sided spectrum to an M-point one by
// keeping the low frequencies at both ends and zeroing (M>N) or dropping
// (M<N) everything in between. When upsampling from an even N, the
// Nyquist bin of the input is split in half between the two tails; when
// downsampling to an even M, the two input bins that meet at the output's
// Nyquist bin are summed into it.
func resizeSpectrum(spec []complex128, m int) []complex128 {
	n := len(spec)
	out := make([]complex128, m)

	if m >= n {
		half := (n + 1) / 2
		copy(out[:half], spec[:half])
		copy(out[m-(n-half):], spec[half:])
		if n%2 == 0 {
			// Nyquist bin of the shorter spectrum is shared between the
			// positive and negative tails of the longer one; split its
			// energy evenly so up- and down-sampling are (near) inverses.
			nyq := spec[n/2] / 2
			out[n/2] = nyq
			out[m-n/2] = nyq
		}
		return out
	}

	half := (m + 1) / 2
	copy(out[:half], spec[:half])
	copy(out[half:], spec[n-(m-half):])
	if m%2 == 0 {
		lo := spec[m/2]
		hi := spec[n-m/2]
		out[m/2] = lo + hi
	}
	return out
}

// FFTShape computes the forward FFT of x, multiplies bin k (of n total,
// k in [0,n)) by weight(k, n), takes the inverse FFT, and returns the real
// part — the "FFT form" noise-shaping path of spec.md §4.1.
func FFTShape(x []float64, weight func(k, n int) float64) []float64 {
	n := len(x)
	fft := fourier.NewCmplxFFT(n)
	seq := make([]complex128, n)
	for i, v := range x {
		seq[i] = complex(v, 0)
	}
	spec := fft.Coefficients(nil, seq)
	for k := range spec {
		spec[k] *= complex(weight(k, n), 0)
	}
	td := fft.Sequence(nil, spec)

	out := make([]float64, n)
	for i, c := range td {
		out[i] = real(c)
	}
	return out
}

// PeakNormalize scales x in place so that its largest absolute sample is 1.
// A silent (all-zero) input is left unchanged.
func PeakNormalize(x []float64) {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	for i := range x {
		x[i] /= peak
	}
}
