package nck

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavScale is the amplitude multiplier spec.md §6 specifies for turning a
// normalized ([-1,1]) signal into signed 16-bit PCM: "amplitude =
// normalized signal x 14000, saturating to int16 range."
const wavScale = 14000

// WriteWAV writes a mono, 16-bit PCM WAV file of sig (expected to be
// roughly in [-1,1]) at the given sample rate, per spec.md §6.
func WriteWAV(w io.WriteSeeker, sig []float64, fs int) error {
	enc := wav.NewEncoder(w, fs, 16, 1, 1)
	ints := make([]int, len(sig))
	for i, v := range sig {
		s := v * wavScale
		switch {
		case s > math.MaxInt16:
			s = math.MaxInt16
		case s < math.MinInt16:
			s = math.MinInt16
		}
		ints[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: fs},
		Data:           ints,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// ReadWAV reads a mono PCM WAV file back into a normalized float64 signal
// (dividing by wavScale, the inverse of WriteWAV) and its sample rate.
func ReadWAV(r io.ReadSeeker) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	out := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float64(v) / wavScale
	}
	return out, buf.Format.SampleRate, nil
}
