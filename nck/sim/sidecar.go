package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Sidecar is the on-disk JSON record of a Monte-Carlo sweep run, per
// SPEC_FULL.md §4. It supports append/resume:
// loading an existing sidecar and continuing a sweep skips every (kr,snr)
// pair already present.
type Sidecar struct {
	Cfg  SidecarCfg                  `json:"cfg"`
	Data map[string]map[string]string `json:"data"`
}

// SidecarCfg mirrors the reference's printed `argparse.Namespace` fields
// that matter for reproducing a run.
type SidecarCfg struct {
	BW      int    `json:"bw"`
	ECC     string `json:"ecc,omitempty"`
	FS      int    `json:"fs"`
	KRList  []Baud `json:"krl"`
	DLength int    `json:"dlength"`
	OLength int    `json:"olength"`
	Rounds  int    `json:"rounds"`
	UTC     string `json:"utc"`
}

// NewSidecarCfg stamps the current time via strftime, matching the
// teacher's xmit.go/tq.go use of lestrrat-go/strftime for timestamping.
func NewSidecarCfg(bw, fs int, ecc string, kr []Baud, dlength, olength, rounds int, now time.Time) SidecarCfg {
	utc, _ := strftime.Format("%Y-%m-%dT%H:%M:%SZ", now.UTC())
	return SidecarCfg{
		BW: bw, ECC: ecc, FS: fs, KRList: kr,
		DLength: dlength, OLength: olength, Rounds: rounds, UTC: utc,
	}
}

// LoadSidecar reads an existing sidecar file, or returns an empty one (with
// cfg zero-valued) if r is empty/absent — callers check for io.EOF-style
// emptiness before calling this by passing a nil reader.
func LoadSidecar(r io.Reader) (*Sidecar, error) {
	if r == nil {
		return &Sidecar{Data: map[string]map[string]string{}}, nil
	}
	var sc Sidecar
	if err := json.NewDecoder(r).Decode(&sc); err != nil {
		if err == io.EOF {
			return &Sidecar{Data: map[string]map[string]string{}}, nil
		}
		return nil, fmt.Errorf("sim: decode sidecar: %w", err)
	}
	if sc.Data == nil {
		sc.Data = map[string]map[string]string{}
	}
	return &sc, nil
}

// Save writes the sidecar as indented JSON.
func (sc *Sidecar) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sc)
}

// Has reports whether (kr,snr) was already recorded, so a resumed sweep
// skips redone work per SPEC_FULL.md's append/resume rule.
func (sc *Sidecar) Has(kr Baud, snrDB float64) bool {
	row, ok := sc.Data[krKey(kr)]
	if !ok {
		return false
	}
	_, ok = row[snrKey(snrDB)]
	return ok
}

// Record stores one (kr,snr) result line in the reference's own
// "kr=… snr=… rounds=… ferrs=… fer=…" text format.
func (sc *Sidecar) Record(kr Baud, res Result) {
	row, ok := sc.Data[krKey(kr)]
	if !ok {
		row = map[string]string{}
		sc.Data[krKey(kr)] = row
	}
	cmp := "="
	if res.Exhausted {
		cmp = "<"
	}
	row[snrKey(res.SNRdB)] = fmt.Sprintf(
		"kr=%d snr=%.1f rounds=%d berrs=%d ferrs=%d ber%s%e fer%s%e",
		kr, res.SNRdB, res.Rounds, res.BitErrs, res.FrameErrs, cmp, res.BER, cmp, res.FER,
	)
}

// LowestFER scans every recorded point for this kr and returns the lowest
// FER seen, used to decide whether the SNR sweep should stop early
// (SPEC_FULL.md: "stops once the lowest recorded FER for that kr falls at
// or below 1e-3").
func (sc *Sidecar) LowestFER(kr Baud) (float64, bool) {
	row, ok := sc.Data[krKey(kr)]
	if !ok || len(row) == 0 {
		return 0, false
	}
	lowest := 1.0
	found := false
	for _, line := range row {
		var fer float64
		if _, err := fmt.Sscanf(extractField(line, "fer"), "%e", &fer); err == nil {
			found = true
			if fer < lowest {
				lowest = fer
			}
		}
	}
	return lowest, found
}

func krKey(kr Baud) string { return fmt.Sprintf("%d", kr) }
func snrKey(snr float64) string { return fmt.Sprintf("%.1f", snr) }

// extractField pulls the value of "name=" or "name<" out of a Record line.
func extractField(line, name string) string {
	for _, sep := range []string{name + "=", name + "<"} {
		idx := indexOf(line, sep)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(sep):]
		end := len(rest)
		for i, c := range rest {
			if c == ' ' {
				end = i
				break
			}
		}
		return rest[:end]
	}
	return ""
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
