package fsort

// Merge input sides for segment tracking.
const (
	sideNone = iota
	sideLeft
	sideRight
)

// segmentTracker accumulates curvature locally during one merge so that the
// shared Trace is touched exactly once per merge.
type segmentTracker struct {
	phi      float64
	segments int64
	side     int
	segLen   int64
}

// take records one entry emitted from side, closing the previous segment if
// the side changed.
func (s *segmentTracker) take(side int) {
	if s.side != side {
		s.close()
		s.side = side
	}
	s.segLen++
}

// takeRun records n consecutive entries emitted from side, extending the
// current segment when the side is unchanged.
func (s *segmentTracker) takeRun(side int, n int64) {
	if s.side != side {
		s.close()
		s.side = side
	}
	s.segLen += n
}

func (s *segmentTracker) close() {
	if s.segLen > 0 {
		s.phi += 1 / float64(s.segLen)
		s.segments++
	}
	s.segLen = 0
}

// flush closes the final segment and folds the local accumulation into tr.
// A nil tr discards the measurement.
func (s *segmentTracker) flush(tr *Trace) {
	s.close()
	if tr != nil {
		tr.add(s.phi, s.segments)
	}
}

// mergeRange merges the sorted subranges arr[lo..mid] and arr[mid+1..hi]
// back into arr through scratch, stable under the entry comparator. The
// caller owns both slices for the duration of the whole sort; concurrent
// merges always operate on disjoint ranges.
func mergeRange(arr, scratch []entry, lo, mid, hi int, tr *Trace) {
	copy(scratch[lo:hi+1], arr[lo:hi+1])

	var seg segmentTracker
	i, j, k := lo, mid+1, lo
	for i <= mid && j <= hi {
		if scratch[i].less(scratch[j]) {
			seg.take(sideLeft)
			arr[k] = scratch[i]
			i++
		} else {
			seg.take(sideRight)
			arr[k] = scratch[j]
			j++
		}
		k++
	}
	if i <= mid {
		seg.takeRun(sideLeft, int64(mid-i+1))
		k += copy(arr[k:hi+1], scratch[i:mid+1])
	}
	if j <= hi {
		seg.takeRun(sideRight, int64(hi-j+1))
		copy(arr[k:hi+1], scratch[j:hi+1])
	}
	seg.flush(tr)
}
