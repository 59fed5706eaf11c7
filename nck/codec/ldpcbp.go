package codec

import "math"

// checkRef names one message slot: the check row j and the position of
// a given bit within that row's adjacency list.
type checkRef struct {
	check, slot int
}

// ldpcTanner is the bipartite (Tanner) graph of a parity-check matrix,
// built once from a possibly-ragged per-check bit list, as spec.md §9
// requires for the FT8 tables ("implementations may use jagged arrays").
// It backs the shared sum-product decoder used by both LDPC(96,50) and
// FT8's LDPC(174,91) (spec.md §4.7.5: "a generic implementation...
// specialized").
type ldpcTanner struct {
	n, m      int
	checkBits [][]int     // m rows: 0-indexed bit columns referenced by each check
	bitChecks [][]checkRef // n rows: which (check,slot) each bit participates in
}

func newTanner(n int, checkBits [][]int) *ldpcTanner {
	m := len(checkBits)
	bitChecks := make([][]checkRef, n)
	for j, bits := range checkBits {
		for slot, i := range bits {
			bitChecks[i] = append(bitChecks[i], checkRef{check: j, slot: slot})
		}
	}
	return &ldpcTanner{n: n, m: m, checkBits: checkBits, bitChecks: bitChecks}
}

func parityOK(t *ldpcTanner, hard []int) bool {
	for _, bits := range t.checkBits {
		var x int
		for _, i := range bits {
			x ^= hard[i]
		}
		if x != 0 {
			return false
		}
	}
	return true
}

// sumProductDecode runs tanh-domain belief propagation over channel LLRs
// lc (convention: positive means bit=0), per spec.md §4.7.5. It returns
// (true, posteriorLLR) as soon as the hard decision satisfies every
// parity check, or (false, posteriorLLR) after maxIter rounds.
func sumProductDecode(t *ldpcTanner, lc []float64, maxIter int) (bool, []float64) {
	m, n := t.m, t.n

	msgToCheck := make([][]float64, m) // M[j][slot]
	for j := range msgToCheck {
		msgToCheck[j] = make([]float64, len(t.checkBits[j]))
		for slot, i := range t.checkBits[j] {
			msgToCheck[j][slot] = lc[i]
		}
	}
	msgFromCheck := make([][]float64, m) // E[j][slot]
	for j := range msgFromCheck {
		msgFromCheck[j] = make([]float64, len(t.checkBits[j]))
	}

	posterior := make([]float64, n)
	hard := make([]int, n)

	for iter := 0; iter < maxIter; iter++ {
		for j := 0; j < m; j++ {
			bits := t.checkBits[j]
			for k := range bits {
				prod := 1.0
				for kk := range bits {
					if kk == k {
						continue
					}
					prod *= math.Tanh(msgToCheck[j][kk] / 2)
				}
				switch {
				case prod > 0.99:
					prod = 0.99
				case prod < -0.99:
					prod = -0.99
				}
				msgFromCheck[j][k] = math.Log((1 + prod) / (1 - prod))
			}
		}

		copy(posterior, lc)
		for j := 0; j < m; j++ {
			for slot, i := range t.checkBits[j] {
				posterior[i] += msgFromCheck[j][slot]
			}
		}
		for i, v := range posterior {
			if v <= 0 {
				hard[i] = 1
			} else {
				hard[i] = 0
			}
		}
		if parityOK(t, hard) {
			return true, posterior
		}

		for i := 0; i < n; i++ {
			refs := t.bitChecks[i]
			var sum float64
			for _, r := range refs {
				sum += msgFromCheck[r.check][r.slot]
			}
			for _, r := range refs {
				msgToCheck[r.check][r.slot] = lc[i] + sum - msgFromCheck[r.check][r.slot]
			}
		}
	}
	return false, posterior
}

// hardFromLLR slices a posterior-LLR vector to hard bits (<=0 => 1).
func hardFromLLR(llr []float64) []int {
	out := make([]int, len(llr))
	for i, v := range llr {
		if v <= 0 {
			out[i] = 1
		}
	}
	return out
}
