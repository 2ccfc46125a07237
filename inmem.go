package fsort

import "golang.org/x/sync/errgroup"

// parallelThreshold is the smallest range length fanned out as concurrent
// tasks. Below it the scheduling overhead outweighs the work.
const parallelThreshold = 1 << 15

// sortEntries sorts arr in place with a top-down stable merge sort. scratch
// must be at least as long as arr and is owned by the caller for the whole
// sort.
func sortEntries(arr, scratch []entry, parallel bool, tr *Trace) {
	if len(arr) > 1 {
		sortRange(arr, scratch, 0, len(arr)-1, parallel, tr)
	}
}

// sortRange sorts arr[lo..hi]. When parallel is set and the range meets
// parallelThreshold, the two halves sort as independent tasks; they own
// disjoint index ranges, so the group wait before the merge is the only
// synchronization needed.
func sortRange(arr, scratch []entry, lo, hi int, parallel bool, tr *Trace) {
	if lo >= hi {
		return
	}
	mid := int(uint(lo+hi) >> 1)
	if parallel && hi-lo+1 >= parallelThreshold {
		var g errgroup.Group
		g.Go(func() error {
			sortRange(arr, scratch, lo, mid, parallel, tr)
			return nil
		})
		g.Go(func() error {
			sortRange(arr, scratch, mid+1, hi, parallel, tr)
			return nil
		})
		_ = g.Wait() // tasks never fail, the wait is a join barrier
	} else {
		sortRange(arr, scratch, lo, mid, parallel, tr)
		sortRange(arr, scratch, mid+1, hi, parallel, tr)
	}
	mergeRange(arr, scratch, lo, mid, hi, tr)
}
