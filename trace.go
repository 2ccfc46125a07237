package fsort

import (
	"math"
	"sync/atomic"
)

// Trace accumulates the curvature of every two-way merge performed by one
// Sort call. Each maximal segment of output taken from a single merge input
// contributes 1/len(segment) to Phi and one to Segments, so a perfectly
// alternating merge yields a large Phi while appending one run after the
// other yields a Phi near zero per merge.
//
// The accumulator is owned by the caller and attached through Config.Trace;
// Sort resets it on entry and it is readable once Sort returns. Sharing one
// handle between concurrent Sort calls corrupts the measurement, never the
// sort itself.
type Trace struct {
	phiBits  atomic.Uint64
	segments atomic.Int64
}

// Reset clears both accumulators.
func (t *Trace) Reset() {
	t.phiBits.Store(0)
	t.segments.Store(0)
}

// Phi returns the accumulated curvature.
func (t *Trace) Phi() float64 {
	return math.Float64frombits(t.phiBits.Load())
}

// Segments returns the total number of merge segments observed.
func (t *Trace) Segments() int64 {
	return t.segments.Load()
}

// add folds one merge's local accumulation into the shared state. The float
// add is a compare-and-swap retry loop since there is no atomic float64 add;
// the counter uses a plain fetch-and-add.
func (t *Trace) add(phi float64, segments int64) {
	for {
		old := t.phiBits.Load()
		next := math.Float64bits(math.Float64frombits(old) + phi)
		if t.phiBits.CompareAndSwap(old, next) {
			break
		}
	}
	t.segments.Add(segments)
}
