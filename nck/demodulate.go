package nck

import (
	"math"

	"github.com/tschudin/nck/nck/dsp"
)

// DemodResult holds the four streams spec.md §4.3 requires a demodulate
// call to return, plus (when Barker sync is configured) the receiver-side
// Barker localization spec.md §4.6 requires.
type DemodResult struct {
	Baseband        []float64 // extracted baseband signal at rate 2*BW
	Lag1            []float64 // smoothed lag-1 autocorrelation stream, rate 2*BW
	Symbols         []int     // recovered symbols
	SamplePositions []int     // index into Lag1 sampled for each symbol
	Barker          *BarkerSync
}

// BarkerSync reports where the Barker sync marker was found in the
// symbol stream, per spec.md §4.6: the detected and expected stream
// offsets, the residual timing error in symbol periods, the
// cross-correlation score at the detected offset, and the symbol-index
// range the marker itself occupies, for callers to mask out of
// bit-error accounting.
type BarkerSync struct {
	DetectedOffset int
	ExpectedOffset int
	TimingError    float64
	Score          float64
	SymbolRange    [2]int // [start, end) symbol indices occupied by the marker
}

// Demodulator recovers symbols from a captured audio waveform, per
// spec.md §4.3.
type Demodulator struct {
	cfg *ModemConfig
	log *Logger
}

// NewDemodulator builds a Demodulator for cfg. log may be nil.
func NewDemodulator(cfg *ModemConfig, log *Logger) *Demodulator {
	return &Demodulator{cfg: cfg, log: log}
}

// Demodulate processes audio (captured at cfg.FS) starting at msgStart
// samples into the capture, returning the baseband signal, the smoothed
// lag-1 stream, the recovered symbols, and the stream index sampled for
// each symbol.
func (d *Demodulator) Demodulate(audio []float64, msgStart int) DemodResult {
	c := d.cfg
	rcvd := append([]float64(nil), audio...)
	invert := false

	if c.CF != 0 {
		if c.twoStageMix() {
			d.log.Warn("no bandpass filtering applied: CF < BW")
			mixInPlace(rcvd, float64(c.FS)/2, float64(c.FS))
			mixInPlace(rcvd, float64(c.FS)/2-(c.CF+c.BW/2), float64(c.FS))
			invert = true
		} else {
			bp := dsp.ButterworthBandpass(5, c.CF-c.BW/2, c.CF+c.BW/2, float64(c.FS))
			rcvd = bp.FiltFilt(rcvd)
			mixInPlace(rcvd, c.CF-c.BW/2, float64(c.FS))
		}
	}

	rcvd = dsp.Resample(rcvd, int(2*c.BW*float64(len(rcvd))/float64(c.FS)))
	dsp.PeakNormalize(rcvd)

	w := c.w
	padded := make([]float64, 0, len(rcvd)+2*w)
	for i := 0; i < w; i++ {
		padded = append(padded, 0.01)
	}
	padded = append(padded, rcvd...)
	for i := 0; i < w; i++ {
		padded = append(padded, 0.01)
	}

	est := newLag1Estimator(w)
	r1 := make([]float64, len(padded))
	for i, v := range padded {
		r1[i] = est.push(v)
	}
	r1 = r1[2*w:]

	smooth := dsp.ButterworthLowpass(2, c.KR, 2*c.BW)
	r1 = smooth.FiltFilt(r1)
	if invert {
		for i := range r1 {
			r1[i] = -r1[i]
		}
	}

	start := int(2 * c.BW * float64(msgStart) / float64(c.FS))
	if start > len(r1) {
		start = len(r1)
	}
	tail := r1[start:]

	// tail[0:w] is the ramp-up symbol and the last w samples the
	// ramp-down symbol; message symbol i is sampled at tail[w*(i+1)].
	nSymbols := len(tail)/w - 2
	if nSymbols < 0 {
		nSymbols = 0
	}
	symbols := make([]int, nSymbols)
	positions := make([]int, nSymbols)
	var mx, mi float64
	if c.M != 2 && nSymbols > 0 {
		mx = sliceThresholdMax(tail[w:], nSymbols, w)
		mi = -mx
	}
	for i := 0; i < nSymbols; i++ {
		pos := start + w*(i+1)
		positions[i] = pos
		symbols[i] = sliceSymbol(c.M, r1[pos], mi, mx)
	}

	d.log.Debug("demodulated", "symbols", nSymbols, "baseband_len", len(rcvd))

	var barker *BarkerSync
	if c.UseBarker {
		detOffset, score := locateBarkerInStream(tail, w, c.BarkerLen)
		expOffset := expectedBarkerOffset(0, w, nSymbols, c.BarkerLen)
		startSym := detOffset / w
		barker = &BarkerSync{
			DetectedOffset: detOffset,
			ExpectedOffset: expOffset,
			TimingError:    barkerTimingError(detOffset, expOffset, w),
			Score:          score,
			SymbolRange:    [2]int{startSym, startSym + c.BarkerLen},
		}
		d.log.Debug("barker sync", "detected_offset", detOffset, "expected_offset", expOffset, "timing_error", barker.TimingError, "score", score)
	}

	return DemodResult{
		Baseband:        rcvd,
		Lag1:            r1,
		Symbols:         symbols,
		SamplePositions: positions,
		Barker:          barker,
	}
}

// sliceThresholdMax computes mx = 0.9*max(|min|,|max|) over the sampled
// positions i*w, i in [0,nSymbols), of window — the M=3/4 slicing scale
// from spec.md §4.3 step 7.
func sliceThresholdMax(window []float64, nSymbols, w int) float64 {
	var lo, hi float64
	for i := 0; i < nSymbols; i++ {
		v := window[w*i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	absLo := math.Abs(lo)
	m := absLo
	if hi > m {
		m = hi
	}
	return 0.9 * m
}

// sliceSymbol quantizes one sampled lag-1 value to a symbol, per
// spec.md §4.3 step 7.
func sliceSymbol(m int, v, mi, mx float64) int {
	switch m {
	case 2:
		if v < 0 {
			return 1
		}
		return 0
	case 3:
		d := (mx - mi) / 3
		switch {
		case v < mi+d:
			return 0
		case v < mx-d:
			return 1
		default:
			return 2
		}
	case 4:
		d := (mx - mi) / 4
		switch {
		case v < mi+d:
			return 0
		case v < 0:
			return 1
		case v < mx-d:
			return 2
		default:
			return 3
		}
	default:
		panic("nck: unsupported arity")
	}
}
