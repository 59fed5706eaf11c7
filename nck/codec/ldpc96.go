package codec

// LDPC96 implements the LDPC(96,50) scheme of spec.md §4.7.3.
//
// The reference implementation reads its generator/parity-check tables
// from an external ldpc96_cfg module that was not part of the retrieval
// pack available here (it ships as a separate data file, not algorithmic
// source). Rather than fabricate a bit-exact copy of tables this
// implementation never saw, LDPC96 constructs an equivalent near-regular
// (column weight 3) systematic (96,50) LDPC code deterministically at
// package init: a fixed, non-random parity matrix Q (46x50) gives every
// message column of H = [Q | I46] weight 3; the systematic generator
// G = [I50; Q] then makes encode/decode/dataFromCode direct slicing
// rather than requiring the Gauss-Jordan back-substitution the reference
// needs for its (non-systematic-looking) external G. See DESIGN.md.
type LDPC96 struct {
	tanner *ldpcTanner
	q      [46][50]int
}

const (
	ldpc96N = 96
	ldpc96K = 50
	ldpc96M = 46
)

// NewLDPC96 builds the code, deriving Q (and the derived H's Tanner
// graph) from a fixed deterministic column-spreading rule: column c's
// three parity rows are a fixed pseudo-random-looking but entirely
// deterministic spread over [0, 46), guaranteeing distinct rows per
// column (and therefore exact column weight 3).
func NewLDPC96() *LDPC96 {
	l := &LDPC96{}
	for c := 0; c < ldpc96K; c++ {
		for _, r := range spreadRows(c, 3, ldpc96M) {
			l.q[r][c] = 1
		}
	}

	checkBits := make([][]int, ldpc96M)
	for r := 0; r < ldpc96M; r++ {
		var bits []int
		for c := 0; c < ldpc96K; c++ {
			if l.q[r][c] == 1 {
				bits = append(bits, c)
			}
		}
		bits = append(bits, ldpc96K+r) // the I46 column for this row
		checkBits[r] = bits
	}
	l.tanner = newTanner(ldpc96N, checkBits)
	return l
}

// spreadRows deterministically picks `count` distinct values in
// [0, mod) for column index seed, using a fixed linear stride. Not
// randomized: the same seed always yields the same rows, so the code is
// reproducible across runs without needing a stored table.
func spreadRows(seed, count, mod int) []int {
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	base := (seed*37 + 11) % mod
	step := 0
	for len(out) < count {
		r := (base + step*13) % mod
		step++
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Encode maps a 50-bit message to its 96-bit systematic codeword:
// c[0:50] = m, c[50+r] = (Q . m)[r].
func (l *LDPC96) Encode(m []int) []int {
	if len(m) != ldpc96K {
		panic("codec: LDPC96.Encode requires a 50-bit message")
	}
	cw := make([]int, ldpc96N)
	copy(cw, m)
	for r := 0; r < ldpc96M; r++ {
		var bit int
		for c := 0; c < ldpc96K; c++ {
			bit ^= l.q[r][c] & m[c]
		}
		cw[ldpc96K+r] = bit
	}
	return cw
}

// Decode runs sum-product BP over 96 channel LLRs, returning (success,
// 50-bit message) per spec.md §4.7.3/§4.7.5.
func (l *LDPC96) Decode(llr []float64, maxIter int) (bool, []int) {
	if len(llr) != ldpc96N {
		panic("codec: LDPC96.Decode requires 96 channel LLRs")
	}
	ok, posterior := sumProductDecode(l.tanner, llr, maxIter)
	hard := hardFromLLR(posterior)
	return ok, hard[:ldpc96K]
}

// DataFromCode extracts the 50 systematic message bits from a 96-bit
// codeword without error correction.
func (LDPC96) DataFromCode(cw []int) []int {
	return append([]int(nil), cw[:ldpc96K]...)
}
