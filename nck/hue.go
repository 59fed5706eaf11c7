package nck

// Hue selects the spectral tilt of a burst of colored noise: REDDISH is
// low-pass-biased (positive lag-1 autocorrelation at the receiver),
// BLUEISH is high-pass-biased (negative lag-1 autocorrelation), and WHITE
// is flat (near-zero lag-1 autocorrelation). M=4 NCK additionally uses
// fractional hues strictly between REDDISH and BLUEISH.
type Hue struct {
	// Fraction is in [-1, +1]: -1 is REDDISH, 0 is WHITE, +1 is BLUEISH.
	// Only intermediate (non -1/0/+1) values are "fractional" in the
	// sense of spec.md §9's Hue sum type; the three named constants below
	// cover the binary/ternary cases exactly.
	Fraction float64
}

// Named hues, matching spec.md §3's enum {REDDISH=-1, WHITE=0, BLUEISH=+1}.
var (
	Reddish = Hue{Fraction: -1}
	White   = Hue{Fraction: 0}
	Blueish = Hue{Fraction: +1}
)

// Fractional builds an intermediate hue for M=4 NCK. f must be in [-1, 1].
func Fractional(f float64) Hue {
	return Hue{Fraction: f}
}

func (h Hue) isReddish() bool { return h.Fraction == -1 }
func (h Hue) isBlueish() bool { return h.Fraction == +1 }
func (h Hue) isWhite() bool   { return h.Fraction == 0 }

// hueForSymbol maps a symbol value in [0, arity) to a Hue, per spec.md
// §4.2 step 3's M-to-hue table. invertBinary implements the
// spectral-inversion compensation spec.md §4.2/§9 requires: when CF>0,
// binary NCK's hue map is flipped before lookup (symmetric M=3/M=4 maps
// are unaffected).
func hueForSymbol(arity, symbol int, invertBinary bool) Hue {
	switch arity {
	case 2:
		b := symbol
		if invertBinary {
			b = 1 - b
		}
		if b == 0 {
			return Reddish
		}
		return Blueish
	case 3:
		switch symbol {
		case 0:
			return Reddish
		case 1:
			return White
		default:
			return Blueish
		}
	case 4:
		switch symbol {
		case 0:
			return Reddish
		case 1:
			return Fractional(-1.0 / 3)
		case 2:
			return Fractional(1.0 / 3)
		default:
			return Blueish
		}
	default:
		panic("nck: unsupported arity")
	}
}
