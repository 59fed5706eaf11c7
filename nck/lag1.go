package nck

// lag1Estimator computes a streaming, incrementally-updated estimate of
// the lag-1 autocorrelation of the last w samples pushed into it, in
// O(w) time per sample (O(w) total state), per spec.md §4.4.
//
// Unlike the Python reference implementation, which keeps this state in
// module-global variables, lag1Estimator is a per-instance value: nothing
// here is shared across Demodulator instances (spec.md §9's required
// re-architecture).
type lag1Estimator struct {
	w int

	raw  []float64 // FIFO of the last w raw samples
	head int        // index of the oldest sample in raw

	sum   float64 // running sum of raw, for the mean
	count int     // number of samples pushed so far (saturates at w)

	// centered holds (x[i] - mean) for the samples currently in the
	// window; push recomputes it, and the numerator/denominator sums of
	// the correlation, on every sample.
	centered []float64
}

// newLag1Estimator returns an estimator with a window of w samples.
func newLag1Estimator(w int) *lag1Estimator {
	return &lag1Estimator{
		w:        w,
		raw:      make([]float64, w),
		centered: make([]float64, w),
	}
}

// reset clears all accumulated state, as if newly constructed.
func (e *lag1Estimator) reset() {
	for i := range e.raw {
		e.raw[i] = 0
		e.centered[i] = 0
	}
	e.head = 0
	e.sum = 0
	e.count = 0
}

// push admits one new sample into the window, evicting the oldest sample
// once the window is full, and returns the current lag-1 autocorrelation
// estimate over the (up to w) samples held.
//
// The mean is recomputed from the running sum on every push (O(1)); the
// centered samples and cross-products are then recomputed in full from
// the raw window (O(w)) to avoid compounding floating-point drift from a
// purely incremental mean/variance update across long streams — the same
// drift-correction tradeoff the reference implementation makes by
// recentering its window each step rather than using Welford-style
// incremental moments.
func (e *lag1Estimator) push(x float64) float64 {
	old := e.raw[e.head]
	e.raw[e.head] = x
	if e.count < e.w {
		e.count++
		e.sum += x
	} else {
		e.sum += x - old
	}
	e.head = (e.head + 1) % e.w

	if e.count < 2 {
		return 0
	}

	mean := e.sum / float64(e.count)

	// Rebuild the centered window in temporal order starting at head
	// (the oldest retained sample), so lag-1 pairs line up correctly.
	n := e.count
	idx := e.head
	if e.count < e.w {
		idx = 0
	}
	for i := 0; i < n; i++ {
		e.centered[i] = e.raw[idx] - mean
		idx = (idx + 1) % e.w
	}

	var cross, sq float64
	for i := 0; i < n-1; i++ {
		cross += e.centered[i] * e.centered[i+1]
	}
	for i := 0; i < n; i++ {
		sq += e.centered[i] * e.centered[i]
	}
	if sq == 0 {
		return 0
	}
	return cross / sq
}

// naiveLag1 recomputes the lag-1 autocorrelation of window directly from
// scratch. It exists only as a cross-check reference for push's
// incremental bookkeeping (used in tests), matching the Python reference
// implementation's formula one-for-one.
func naiveLag1(window []float64) float64 {
	n := len(window)
	if n < 2 {
		return 0
	}
	var mean float64
	for _, v := range window {
		mean += v
	}
	mean /= float64(n)

	var cross, sq float64
	prev := window[0] - mean
	sq = prev * prev
	for i := 1; i < n; i++ {
		c := window[i] - mean
		cross += prev * c
		sq += c * c
		prev = c
	}
	if sq == 0 {
		return 0
	}
	return cross / sq
}
