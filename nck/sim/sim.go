// Package sim implements the Monte-Carlo SNR/KR sweep harness of
// SPEC_FULL.md §4, modeled on mk_nck-fer_simulation.py: for a fixed FT8
// frame (77-bit payload + CRC-14 + LDPC(174,91)), repeatedly modulate,
// add noise at a target SNR, demodulate, and track bit/frame error
// counts until either a frame-error budget or round budget is reached.
package sim

import (
	"math"
	"math/rand"

	"github.com/tschudin/nck/nck"
	"github.com/tschudin/nck/nck/codec"
)

// Params configures one sweep point.
type Params struct {
	FS, BW, CF int
	KR         Baud
	UseFFT     bool
	MaxRounds  int
	// FrameErrBudget stops a round early once this many frame errors have
	// accumulated, matching the reference's "break once ferrs>=30" rule.
	FrameErrBudget int
}

// Baud is a keying rate in symbols/second, named so sweep results read the
// same as the reference's "kr=300" style log lines.
type Baud int

// Result is one (kr,snr) sweep point's outcome.
type Result struct {
	SNRdB      float64
	Rounds     int
	BitErrs    int
	FrameErrs  int
	BER        float64
	FER        float64
	Exhausted  bool // true if MaxRounds was reached without hitting FrameErrBudget
}

// Runner drives repeated loopback trials of the FT8-coded NCK frame at a
// fixed channel configuration, varying only the injected noise level.
type Runner struct {
	cfg *nck.ModemConfig
	ft8 *codec.FT8
	rng *rand.Rand
	log *nck.Logger
}

// NewRunner builds a Runner for the given channel parameters. UseFFT
// selects the FFT-form noise shaping path (§4.1).
func NewRunner(p Params, rng *rand.Rand, log *nck.Logger) (*Runner, error) {
	var opts []nck.Option
	if p.UseFFT {
		opts = append(opts, nck.WithFFTShape())
	}
	cfg, err := nck.NewModemConfig(p.FS, float64(p.CF), float64(p.BW), float64(p.KR), 2, opts...)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, ft8: codec.NewFT8(), rng: rng, log: log}, nil
}

// Point runs the simulation at one SNR point until FrameErrBudget frame
// errors accumulate or MaxRounds is exhausted, mirroring the reference's
// per-SNR loop ("break once ferrs>=30").
func (r *Runner) Point(p Params, snrDB float64) Result {
	var bitErrs, frameErrs, rounds int
	for rounds = 0; rounds < p.MaxRounds; rounds++ {
		berr, ferr := r.oneRound(snrDB)
		bitErrs += berr
		frameErrs += ferr
		if frameErrs >= p.FrameErrBudget {
			rounds++
			break
		}
	}
	exhausted := frameErrs < p.FrameErrBudget
	return Result{
		SNRdB:     snrDB,
		Rounds:    rounds,
		BitErrs:   bitErrs,
		FrameErrs: frameErrs,
		BER:       float64(bitErrs) / float64(91*rounds),
		FER:       float64(frameErrs) / float64(rounds),
		Exhausted: exhausted,
	}
}

func (r *Runner) oneRound(snrDB float64) (bitErrs, frameErrs int) {
	payload := make([]int, 77)
	for i := range payload {
		payload[i] = r.rng.Intn(2)
	}
	codeword := r.ft8.Encode(payload)

	mod := nck.NewModulator(r.cfg, r.rng, r.log)
	audio := mod.Modulate(codeword)
	peakNormalize(audio)

	padSamples := r.cfg.FS
	padded := make([]float64, 0, len(audio)+2*padSamples)
	padded = append(padded, make([]float64, padSamples)...)
	padded = append(padded, audio...)
	padded = append(padded, make([]float64, padSamples)...)

	pwrS := sumSquares(audio)
	noise := make([]float64, len(padded))
	for i := range noise {
		noise[i] = 2*r.rng.Float64() - 1
	}
	pwrN := sumSquares(noise)
	pwrN *= float64(len(audio)) / float64(len(padded))
	pwrN *= float64(r.cfg.BW) / (float64(r.cfg.FS) / 2)
	x := 10*math.Log10(pwrS/pwrN) - snrDB
	scale := math.Sqrt(math.Pow(10, x/10))
	for i := range noise {
		padded[i] += noise[i] * scale
	}
	peakNormalize(padded)

	demod := nck.NewDemodulator(r.cfg, r.log)
	res := demod.Demodulate(padded, padSamples)

	msg := res.Symbols
	if len(msg) > len(codeword) {
		msg = msg[:len(codeword)]
	}
	for i := range codeword {
		if i >= len(msg) {
			bitErrs++
			continue
		}
		if codeword[i] != msg[i] {
			bitErrs++
		}
	}

	llr := make([]float64, 174)
	for i := 0; i < 174; i++ {
		if i < len(msg) && msg[i] == 1 {
			llr[i] = -4.5
		} else {
			llr[i] = 4.5
		}
	}
	ok, decoded := r.ft8.Decode(llr, 100)
	if !ok || !codec.CheckCRC14(decoded) {
		frameErrs = 1
	}
	return bitErrs, frameErrs
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}

func peakNormalize(v []float64) {
	var mx float64
	for _, x := range v {
		if math.Abs(x) > mx {
			mx = math.Abs(x)
		}
	}
	if mx == 0 {
		return
	}
	for i := range v {
		v[i] /= mx
	}
}
