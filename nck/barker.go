package nck

import "math"

// barkerTable lists the sync markers (as +1/-1 values), keyed by length,
// that spec.md §4.6 names as valid for binary NCK:
// {7,11,13,14,22,26,21,33,39}. 7, 11 and 13 are the classical Barker
// codes; 14, 22 and 26 repeat each chip of the 7, 11 and 13 codes twice,
// and 21, 33 and 39 repeat each chip three times.
var barkerTable = map[int][]int{
	7:  {1, 1, 1, -1, -1, 1, -1},
	11: {1, 1, 1, -1, -1, -1, 1, -1, -1, 1, -1},
	13: {1, 1, 1, 1, 1, -1, -1, 1, 1, -1, 1, -1, 1},
	14: {1, 1, 1, 1, 1, 1, -1, -1, -1, -1, 1, 1, -1, -1},
	21: {1, 1, 1, 1, 1, 1, 1, 1, 1, -1, -1, -1, -1, -1, -1, 1, 1, 1, -1, -1, -1},
	22: {1, 1, 1, 1, 1, 1, -1, -1, -1, -1, -1, -1, 1, 1, -1, -1, -1, -1, 1, 1, -1, -1},
	26: {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, -1, -1, -1, 1, 1, 1, 1, -1, -1, 1, 1, -1, -1, 1, 1},
	33: {1, 1, 1, 1, 1, 1, 1, 1, 1, -1, -1, -1, -1, -1, -1, -1, -1, -1, 1, 1, 1, -1, -1, -1, -1, -1, -1, 1, 1, 1, -1, -1, -1},
	39: {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, -1, -1, -1, -1, -1, 1, 1, 1, 1, 1, 1, -1, -1, -1, 1, 1, 1, -1, -1, -1, 1, 1, 1},
}

// barkerSequence returns the +1/-1 Barker sequence of the given length,
// and whether that length is supported.
func barkerSequence(length int) ([]int, bool) {
	seq, ok := barkerTable[length]
	return seq, ok
}

// BarkerSequence is the public BarkerTable lookup spec.md §6 names as
// part of the library surface: the +1/-1 sync marker of the given
// length, and whether that length is supported.
func BarkerSequence(length int) ([]int, bool) {
	seq, ok := barkerSequence(length)
	return append([]int(nil), seq...), ok
}

// barkerCorrelate slides the Barker template of the given length across
// signs (a sequence of demodulated +1/-1 symbol-sign decisions) and
// returns the offset of the best-correlating position and its
// normalized correlation score in [-1, 1], per spec.md §4.6: the sync
// marker is located at the frame midpoint by maximizing the sum of
// elementwise products against the template.
func barkerCorrelate(signs []int, length int) (offset int, score float64) {
	tmpl, ok := barkerSequence(length)
	if !ok || len(signs) < length {
		return 0, 0
	}
	best := -1
	bestScore := -1.0
	for start := 0; start+length <= len(signs); start++ {
		var sum int
		for i, t := range tmpl {
			sum += t * signs[start+i]
		}
		s := float64(sum) / float64(length)
		if s > bestScore {
			bestScore = s
			best = start
		}
	}
	return best, bestScore
}

// expectedBarkerOffset returns the stream index (into a w-sample-per-symbol
// grid starting at the frame's leading ramp-up symbol, padLen samples long)
// where a length-L Barker marker inserted at the midpoint of an nSym-symbol
// payload is expected to sit, per spec.md §4.6:
//
//	PADLEN + (1 + (N_sym - L)/2 - 1/2) * T_sym
func expectedBarkerOffset(padLen, w, nSym, length int) int {
	tSym := float64(w)
	return padLen + int((1+float64(nSym-length)/2-0.5)*tSym)
}

// locateBarkerInStream cross-correlates the smoothed lag-1 stream r1
// against the w-fold-expanded ±1 Barker template of the given length,
// returning the best-matching start offset into r1 and its (unnormalized)
// correlation score, per spec.md §4.6's receiver-side procedure.
func locateBarkerInStream(r1 []float64, w, length int) (offset int, score float64) {
	tmpl, ok := barkerSequence(length)
	if !ok {
		return 0, 0
	}
	expanded := make([]float64, length*w)
	for i, t := range tmpl {
		for j := 0; j < w; j++ {
			expanded[i*w+j] = float64(t)
		}
	}
	if len(r1) < len(expanded) {
		return 0, 0
	}

	best := 0
	bestScore := math.Inf(-1)
	for start := 0; start+len(expanded) <= len(r1); start++ {
		var sum float64
		for i, t := range expanded {
			sum += t * r1[start+i]
		}
		if sum > bestScore {
			bestScore = sum
			best = start
		}
	}
	return best, bestScore
}

// barkerTimingError reports the residual timing error, in symbol periods,
// between the detected and expected Barker offsets (spec.md §4.6:
// "(detected - expected)/T_sym").
func barkerTimingError(detected, expected, w int) float64 {
	return float64(detected-expected) / float64(w)
}
