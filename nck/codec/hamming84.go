package codec

// Hamming implements extended Hamming(8,4): the standard Hamming(7,4)
// code with parity bits p1,p2,p4 plus an overall extension-parity bit
// px, per spec.md §4.7.1. Encode/decode LUTs are built once at package
// init, mirroring the reference's h84_init table construction.
type Hamming struct{}

var (
	hammingEncLUT [16][8]int
	hammingDecOK  [256]bool
	hammingDecLUT [256][4]int
)

func init() {
	for i := 0; i < 16; i++ {
		hammingEncLUT[i] = hammingEncodeRaw(intToBits4(i))
	}
	for i := 0; i < 256; i++ {
		b8 := intToBits8(i)
		ok, d := hammingDecodeRaw(b8)
		hammingDecOK[i] = ok
		hammingDecLUT[i] = d
	}
}

// hammingEncodeRaw implements the systematic encode: three parity bits
// over the Hamming(7,4) positions, plus the overall parity bit px.
func hammingEncodeRaw(b4 [4]int) [8]int {
	p1 := (b4[0] + b4[1] + b4[3]) % 2
	p2 := (b4[0] + b4[2] + b4[3]) % 2
	p4 := (b4[1] + b4[2] + b4[3]) % 2
	b7 := [7]int{p1, p2, b4[0], p4, b4[1], b4[2], b4[3]}
	var px int
	for _, b := range b7 {
		px ^= b
	}
	return [8]int{b7[0], b7[1], b7[2], b7[3], b7[4], b7[5], b7[6], px}
}

// hammingDataFromCode extracts the 4 message bits from an 8-bit
// codeword: positions 2, 4, 5, 6 (0-indexed), matching the reference's
// `cw[2:3] + cw[4:7]`.
func hammingDataFromCode(cw [8]int) [4]int {
	return [4]int{cw[2], cw[4], cw[5], cw[6]}
}

func hammingDecodeRaw(b8 [8]int) (bool, [4]int) {
	b4 := hammingDataFromCode(b8)
	e := hammingEncodeRaw(b4)

	p1 := boolToInt(e[0] != b8[0])
	p2 := boolToInt(e[1] != b8[1])
	p4 := boolToInt(e[3] != b8[3])
	var px int
	for _, b := range b8[:7] {
		px ^= b
	}
	s := p1 + 2*p2 + 4*p4

	if px != b8[7] {
		if s == 0 || s == 1 || s == 2 || s == 4 {
			return true, b4 // error in px or a parity bit; data unaffected
		}
		corrected := b8
		corrected[s-1] = 1 - corrected[s-1]
		return true, hammingDataFromCode(corrected)
	}
	if p1+p2+p4 == 0 {
		return true, b4
	}
	return false, b4
}

// Encode maps a 4-bit message to its extended Hamming(8,4) codeword.
func (Hamming) Encode(m []int) []int {
	if len(m) != 4 {
		panic("codec: Hamming.Encode requires a 4-bit message")
	}
	idx := bitsToInt(m)
	e := hammingEncLUT[idx]
	return e[:]
}

// Decode corrects a single bit error (if any) in an 8-bit codeword.
func (Hamming) Decode(c []int) (bool, []int) {
	if len(c) != 8 {
		panic("codec: Hamming.Decode requires an 8-bit codeword")
	}
	idx := bitsToInt(c)
	d := hammingDecLUT[idx]
	return hammingDecOK[idx], d[:]
}

// DataFromCode extracts the message bits without error correction.
func (Hamming) DataFromCode(c []int) []int {
	var b4 [4]int
	cw := [8]int{c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7]}
	b4 = hammingDataFromCode(cw)
	return b4[:]
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBits4(val int) [4]int {
	var out [4]int
	for i := 0; i < 4; i++ {
		out[3-i] = (val >> i) & 1
	}
	return out
}

func intToBits8(val int) [8]int {
	var out [8]int
	for i := 0; i < 8; i++ {
		out[7-i] = (val >> i) & 1
	}
	return out
}

func bitsToInt(bits []int) int {
	v := 0
	for _, b := range bits {
		v = (v << 1) | b
	}
	return v
}
