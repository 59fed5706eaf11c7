// Command nck-sim runs the Monte-Carlo FER-vs-SNR sweep harness of
// nck/sim over one or more keying rates, persisting results to a JSON
// sidecar file that supports append/resume (SPEC_FULL.md §4).
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/tschudin/nck/nck"
	"github.com/tschudin/nck/nck/sim"
)

func main() {
	var (
		fs        = pflag.IntP("fs", "f", 6000, "sample rate in Hz")
		cf        = pflag.IntP("cf", "c", 0, "center frequency in Hz")
		bw        = pflag.IntP("bw", "b", 2500, "bandwidth in Hz")
		krList    = pflag.StringP("kr", "k", "300,250,200,150,125,100", "comma-separated keying rates in Baud")
		rounds    = pflag.IntP("rounds", "r", 3000, "max rounds per SNR point")
		ferBudget = pflag.Int("frame-err-budget", 30, "stop a round early after this many frame errors")
		fftShape  = pflag.BoolP("fft", "t", false, "use FFT-form noise shaping")
		snrFrom   = pflag.Float64("snr-from", -2.0, "starting (lowest/hardest) SNR in dB")
		snrTo     = pflag.Float64("snr-to", 13.0, "ending (highest/easiest) SNR in dB")
		snrStep   = pflag.Float64("snr-step", 0.5, "SNR step in dB")
		out       = pflag.StringP("out", "o", "nck-fer-sweep.json", "sidecar JSON path")
		seed      = pflag.Int64("seed", 1, "PRNG seed")
		logLevel  = pflag.String("log-level", "info", "log level: debug, info, warn, error")
		help      = pflag.BoolP("help", "h", false, "display help text")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Monte-Carlo FER sweep for Noise Color Keying\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: %s [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	log := nck.NewLogger(os.Stderr, *logLevel)

	krs, err := parseKRList(*krList)
	if err != nil {
		log.Error("bad -kr list", "err", err.Error())
		os.Exit(1)
	}

	sc, err := loadOrCreateSidecar(*out, *bw, *fs, krs, 77, 174, *rounds)
	if err != nil {
		log.Error("cannot load sidecar", "path", *out, "err", err.Error())
		os.Exit(1)
	}

	cfg := sim.SweepConfig{
		FS: *fs, BW: *bw, CF: *cf, UseFFT: *fftShape,
		MaxRounds: *rounds, FrameErrBudget: *ferBudget,
		KRList:    krs,
		SNRFromDB: *snrFrom,
		SNRToDB:   *snrTo,
		SNRStepDB: *snrStep,
	}

	rng := rand.New(rand.NewSource(*seed))

	if err := sim.RunSweep(cfg, sc, rng, log); err != nil {
		log.Error("sweep failed", "err", err.Error())
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Error("cannot write sidecar", "path", *out, "err", err.Error())
		os.Exit(1)
	}
	defer f.Close()
	if err := sc.Save(f); err != nil {
		log.Error("sidecar save failed", "err", err.Error())
		os.Exit(1)
	}
	log.Info("sweep complete", "out", *out)
}

func parseKRList(s string) ([]sim.Baud, error) {
	var out []sim.Baud
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid keying rate %q: %w", tok, err)
		}
		out = append(out, sim.Baud(v))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no keying rates given")
	}
	return out, nil
}

func loadOrCreateSidecar(path string, bw, fs int, krs []sim.Baud, dlength, olength, rounds int) (*sim.Sidecar, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			sc := &sim.Sidecar{Data: map[string]map[string]string{}}
			sc.Cfg = sim.NewSidecarCfg(bw, fs, "ft8", krs, dlength, olength, rounds, time.Now())
			return sc, nil
		}
		return nil, err
	}
	defer f.Close()
	return sim.LoadSidecar(f)
}
