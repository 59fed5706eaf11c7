package codec

// Golay implements the extended binary Golay(24,12) code, per spec.md
// §4.7.2: a systematic [I12|B] generator over GF(2), decoded with the
// classical weight-tree search over the fixed 12x12 B matrix.
type Golay struct{}

// golayB is the fixed 12x12 matrix from the reference implementation;
// G = [I12 | golayB] is the Golay(24,12) generator, kept verbatim so
// encoded codewords match the source bit-for-bit.
var golayB = [12][12]int{
	{1, 1, 0, 1, 1, 1, 0, 0, 0, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 0, 0, 1, 0, 1, 1},
	{0, 1, 1, 1, 0, 0, 0, 1, 0, 1, 1, 1},
	{1, 1, 1, 0, 0, 0, 1, 0, 1, 1, 0, 1},
	{1, 1, 0, 0, 0, 1, 0, 1, 1, 0, 1, 1},
	{1, 0, 0, 0, 1, 0, 1, 1, 0, 1, 1, 1},
	{0, 0, 0, 1, 0, 1, 1, 0, 1, 1, 1, 1},
	{0, 0, 1, 0, 1, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 0, 1, 1, 0, 1, 1, 1, 0, 0, 1},
	{1, 0, 1, 1, 0, 1, 1, 1, 0, 0, 0, 1},
	{0, 1, 1, 0, 1, 1, 1, 0, 0, 0, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
}

// Encode maps a 12-bit message to its 24-bit codeword: c = m . [I|B].
func (Golay) Encode(m []int) []int {
	if len(m) != 12 {
		panic("codec: Golay.Encode requires a 12-bit message")
	}
	c := make([]int, 24)
	copy(c, m)
	for col := 0; col < 12; col++ {
		var bit int
		for row := 0; row < 12; row++ {
			bit ^= m[row] & golayB[row][col]
		}
		c[12+col] = bit
	}
	return c
}

// Decode corrects up to 3 bit errors in a 24-bit received word and
// returns (true, message) on success, or (false, message) if none of the
// weight-tree cases applied (spec.md §4.7.2 step 5: best-effort, zero
// error vector).
func (Golay) Decode(c []int) (bool, []int) {
	if len(c) != 24 {
		panic("codec: Golay.Decode requires a 24-bit codeword")
	}

	s1 := golaySyndrome(c)
	var err [24]int
	ok := true

	switch {
	case weight(s1[:]) <= 3:
		copy(err[12:], s1[:])

	default:
		if j, sum, found := bestColumnMatch(s1); found {
			err[j] = 1
			copy(err[12:], sum[:])
		} else {
			s2 := mulVecBT(s1)
			switch {
			case weight(s2[:]) <= 3:
				copy(err[:12], s2[:])
			default:
				if j, sum, found := bestColumnMatch(s2); found {
					copy(err[:12], sum[:])
					err[12+j] = 1
				} else {
					ok = false
				}
			}
		}
	}

	corrected := make([]int, 24)
	for i := range corrected {
		corrected[i] = c[i] ^ err[i]
	}
	return ok, corrected[:12]
}

// DataFromCode extracts the message bits without error correction.
func (Golay) DataFromCode(c []int) []int {
	return append([]int(nil), c[:12]...)
}

// golaySyndrome computes s1 = c . Ht where H = [B | I12], matching the
// reference implementation's transpose(conjoin(B,I)) construction.
func golaySyndrome(c []int) [12]int {
	var s [12]int
	for r := 0; r < 12; r++ {
		var bit int
		for col := 0; col < 12; col++ {
			bit ^= c[col] & golayB[r][col]
		}
		bit ^= c[12+r]
		s[r] = bit
	}
	return s
}

// mulVecBT computes v . B^T.
func mulVecBT(v [12]int) [12]int {
	var out [12]int
	for row := 0; row < 12; row++ {
		var bit int
		for col := 0; col < 12; col++ {
			bit ^= v[col] & golayB[row][col]
		}
		out[row] = bit
	}
	return out
}

// bestColumnMatch finds the column j of B minimizing wt(s XOR B_j) among
// those with weight <= 2, returning the lowest-weight match (ties broken
// by smallest j), per spec.md §4.7.2 steps 2/4.
func bestColumnMatch(s [12]int) (j int, sum [12]int, found bool) {
	bestWeight := 99
	for col := 0; col < 12; col++ {
		var cand [12]int
		for row := 0; row < 12; row++ {
			cand[row] = s[row] ^ golayB[row][col]
		}
		w := weight(cand[:])
		if w <= 2 && w < bestWeight {
			bestWeight = w
			j = col
			sum = cand
			found = true
		}
	}
	return j, sum, found
}

func weight(v []int) int {
	var w int
	for _, b := range v {
		w += b
	}
	return w
}
