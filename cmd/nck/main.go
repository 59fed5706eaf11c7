// Command nck modulates or demodulates a single NCK frame: it assembles a
// payload, runs it through the chosen error-correcting codec, interleaves
// and (optionally) Barker-syncs the bit stream, modulates to audio, and
// can immediately loop it back through the demodulator — the CLI surface
// of SPEC_FULL.md §2.4.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/spf13/pflag"

	"github.com/tschudin/nck/nck"
	"github.com/tschudin/nck/nck/codec"
)

func main() {
	var (
		fs        = pflag.IntP("fs", "f", 6000, "sample rate in Hz")
		cf        = pflag.Float64P("cf", "c", 0, "center frequency in Hz (0 = baseband)")
		bw        = pflag.Float64P("bw", "b", 500, "bandwidth in Hz")
		kr        = pflag.Float64P("kr", "k", 20, "keying rate in Baud")
		arity     = pflag.IntP("arity", "M", 2, "symbol arity: 2, 3, or 4")
		length    = pflag.IntP("len", "l", 48, "random payload length in bits")
		ecc       = pflag.StringP("ecc", "e", "", "error-correcting scheme: ft8, golay24, hamming84, ldpc96 (empty = none)")
		barker    = pflag.IntP("barker", "B", 0, "Barker sync length (0 = disabled)")
		interlv   = pflag.BoolP("interleave", "i", false, "bit-interleave before modulation")
		snr       = pflag.Float64P("snr", "s", 0, "inject noise at this SNR in dB (0 = no injected noise)")
		fftShape  = pflag.BoolP("fft-shaping", "t", false, "use FFT-form noise shaping")
		wavPath   = pflag.StringP("wav", "w", "", "write modulated audio to this WAV path")
		profile   = pflag.String("profile", "", "load channel parameters from a named profile in --profiles-file")
		profFile  = pflag.String("profiles-file", "", "YAML file of named channel profiles")
		birdies   = pflag.IntP("birdies", "y", 0, "number of spurious narrowband tones to inject (0 = none)")
		plot      = pflag.BoolP("plot", "p", false, "note that plots were requested (rendering is out of scope)")
		seed      = pflag.Int64("seed", 1, "PRNG seed, for reproducible traces")
		logLevel  = pflag.String("log-level", "info", "log level: debug, info, warn, error")
		help      = pflag.BoolP("help", "h", false, "display help text")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - modulate/demodulate one Noise Color Keying frame\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: %s [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	log := nck.NewLogger(os.Stderr, *logLevel)

	cfg, err := resolveConfig(*profile, *profFile, *fs, *cf, *bw, *kr, *arity, *barker, *fftShape, log)
	if err != nil {
		log.Error("configuration error", "err", err.Error())
		os.Exit(1)
	}

	if *plot {
		log.Info("plot rendering requested but out of core scope; skipping")
	}
	if *birdies > 0 {
		log.Warn("birdie injection requested but not implemented by this CLI", "count", *birdies)
	}

	rng := rand.New(rand.NewSource(*seed))

	payload := make([]int, *length)
	for i := range payload {
		payload[i] = rng.Intn(2)
	}

	bits, err := encodeFrame(payload, *ecc)
	if err != nil {
		log.Error("encode error", "err", err.Error())
		os.Exit(1)
	}

	if *interlv {
		bits = interleaveBits(bits)
	}
	if cfg.UseBarker {
		bits = insertBarkerAtMidpoint(bits, cfg.BarkerLen)
	}

	mod := nck.NewModulator(cfg, rng, log)
	audio := mod.Modulate(bits)

	if *snr != 0 {
		audio = injectNoise(audio, *snr, rng)
	}

	if *wavPath != "" {
		f, err := os.Create(*wavPath)
		if err != nil {
			log.Error("cannot create wav file", "path", *wavPath, "err", err.Error())
			os.Exit(1)
		}
		defer f.Close()
		if err := nck.WriteWAV(f, audio, cfg.FS); err != nil {
			log.Error("wav write failed", "err", err.Error())
			os.Exit(1)
		}
		log.Info("wrote audio", "path", *wavPath, "samples", len(audio))
	}

	demod := nck.NewDemodulator(cfg, log)
	result := demod.Demodulate(audio, 0)

	var errs int
	if result.Barker != nil {
		lo, hi := result.Barker.SymbolRange[0], result.Barker.SymbolRange[1]
		errs = countMismatchesMasked(bits, result.Symbols, lo, hi)
		log.Info("barker sync",
			"detected_offset", result.Barker.DetectedOffset,
			"expected_offset", result.Barker.ExpectedOffset,
			"timing_error_symbols", result.Barker.TimingError,
			"score", result.Barker.Score)
	} else {
		errs = countMismatches(bits, result.Symbols)
	}
	log.Info("loopback complete", "bits_sent", len(bits), "symbols_recovered", len(result.Symbols), "mismatches", errs)

	if errs != 0 {
		os.Exit(1)
	}
}

func resolveConfig(profile, profilesFile string, fs int, cf, bw, kr float64, arity, barkerLen int, fftShape bool, log *nck.Logger) (*nck.ModemConfig, error) {
	if profile == "" {
		var opts []nck.Option
		if fftShape {
			opts = append(opts, nck.WithFFTShape())
		}
		if barkerLen > 0 {
			opts = append(opts, nck.WithBarker(barkerLen))
		}
		return nck.NewModemConfig(fs, cf, bw, kr, arity, opts...)
	}

	if profilesFile == "" {
		return nil, fmt.Errorf("--profile given without --profiles-file")
	}
	f, err := os.Open(profilesFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	profiles, err := nck.LoadProfiles(f)
	if err != nil {
		return nil, err
	}
	p, ok := profiles[profile]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", profile)
	}
	log.Info("loaded profile", "name", profile)
	return p.Config()
}

// encodeFrame maps the named ECC scheme's encode over length-aligned
// blocks of payload, per SPEC_FULL.md §4 "per-scheme block sizes". FT8
// requires an exact 77-bit payload, the others operate block-wise.
func encodeFrame(payload []int, ecc string) ([]int, error) {
	switch ecc {
	case "":
		return payload, nil
	case "ft8":
		if len(payload) != 77 {
			return nil, fmt.Errorf("ft8 requires a 77-bit payload, got %d", len(payload))
		}
		f := codec.NewFT8()
		return f.Encode(payload), nil
	case "golay24":
		return encodeBlocks(payload, 12, codec.Golay{}.Encode)
	case "hamming84":
		return encodeBlocks(payload, 4, codec.Hamming{}.Encode)
	case "ldpc96":
		l := codec.NewLDPC96()
		return encodeBlocks(payload, 50, l.Encode)
	default:
		return nil, fmt.Errorf("unknown ecc scheme %q", ecc)
	}
}

func encodeBlocks(payload []int, blockLen int, encode func([]int) []int) ([]int, error) {
	if len(payload)%blockLen != 0 {
		return nil, fmt.Errorf("payload length %d is not a multiple of the block size %d", len(payload), blockLen)
	}
	var out []int
	for i := 0; i < len(payload); i += blockLen {
		out = append(out, encode(payload[i:i+blockLen])...)
	}
	return out, nil
}

func interleaveBits(bits []int) []int {
	return nck.NewInterleaver(len(bits)).Map(bits)
}

func barkerBits(length int) []int {
	// Barker markers are ±1 sequences; represented here as 0/1 bits
	// (+1 becomes bit 0, a "reddish" symbol; -1 becomes bit 1, "blueish").
	seq, _ := nck.BarkerSequence(length)
	bits := make([]int, len(seq))
	for i, s := range seq {
		if s < 0 {
			bits[i] = 1
		}
	}
	return bits
}

// insertBarkerAtMidpoint splits bits into halves and inserts the Barker
// marker between them, per spec.md §4.6 ("inserted at the midpoint of
// the symbol stream, splitting the payload in halves").
func insertBarkerAtMidpoint(bits []int, length int) []int {
	bk := barkerBits(length)
	mid := len(bits) / 2
	out := make([]int, 0, len(bits)+len(bk))
	out = append(out, bits[:mid]...)
	out = append(out, bk...)
	out = append(out, bits[mid:]...)
	return out
}

func countMismatches(sent, recv []int) int {
	return countMismatchesMasked(sent, recv, -1, -1)
}

// countMismatchesMasked counts symbol mismatches between sent and recv,
// excluding the [maskStart, maskEnd) index range — spec.md §4.6's "Barker
// symbols are masked out of bit-error accounting" rule.
func countMismatchesMasked(sent, recv []int, maskStart, maskEnd int) int {
	n := len(sent)
	if len(recv) < n {
		n = len(recv)
	}
	errs := len(sent) - n
	for i := 0; i < n; i++ {
		if i >= maskStart && i < maskEnd {
			continue
		}
		if sent[i] != recv[i] {
			errs++
		}
	}
	return errs
}

func injectNoise(audio []float64, snrDB float64, rng *rand.Rand) []float64 {
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
