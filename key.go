package fsort

import "math"

const (
	signMask uint64 = 0x8000000000000000
	fullMask uint64 = 0xFFFFFFFFFFFFFFFF
)

// Key maps a float64 to a uint64 whose unsigned order equals the IEEE-754
// total order of the input. Non-negative values get their sign bit flipped,
// which places them above every negative value; negative values are
// bit-complemented, which reverses their relative order and places them
// below. -0.0 sorts immediately below +0.0, and NaNs collate wherever their
// raw bit pattern lands rather than being grouped at one end.
func Key(x float64) uint64 {
	u := math.Float64bits(x)
	if u&signMask != 0 {
		return u ^ fullMask
	}
	return u ^ signMask
}

// entry is the unit the merge machinery orders. tie and seq exist only to
// make the comparator a strict total order: both carry the original input
// index on the in-memory path and zero for file-backed runs, where ties fall
// back to read order.
type entry struct {
	key   uint64
	tie   uint64
	seq   uint64
	value float64
}

// less reports whether a orders before b: key, then tie, then seq, taking a
// on full equality so merges are stable. This comparator is the single
// ordering authority for both the in-memory and external paths.
func (a entry) less(b entry) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	if a.tie != b.tie {
		return a.tie < b.tie
	}
	return a.seq <= b.seq
}

// makeEntry keys a value at its original input index.
func makeEntry(v float64, idx uint64) entry {
	return entry{key: Key(v), tie: idx, seq: idx, value: v}
}

// streamEntry keys a value read back from a run file. Run files do not carry
// the original index.
func streamEntry(v float64) entry {
	return entry{key: Key(v), value: v}
}
