package fsort

import (
	"math"
	"sort"
	"testing"
)

func TestKeyOrdersValueChain(t *testing.T) {
	chain := []float64{
		math.Inf(-1),
		-math.MaxFloat64,
		-5.0,
		-math.SmallestNonzeroFloat64,
		math.Copysign(0, -1),
		0.0,
		math.SmallestNonzeroFloat64,
		5.0,
		math.MaxFloat64,
		math.Inf(1),
	}
	for i := 1; i < len(chain); i++ {
		if Key(chain[i-1]) >= Key(chain[i]) {
			t.Errorf("Key(%v) = %016x not below Key(%v) = %016x",
				chain[i-1], Key(chain[i-1]), chain[i], Key(chain[i]))
		}
	}
}

func TestKeySignedZero(t *testing.T) {
	neg := Key(math.Copysign(0, -1))
	pos := Key(0.0)
	if neg >= pos {
		t.Fatalf("Key(-0.0) = %016x, Key(+0.0) = %016x, want strict order", neg, pos)
	}
	if pos-neg != 1 {
		t.Errorf("-0.0 should sort immediately below +0.0, key gap is %d", pos-neg)
	}
}

func TestKeyIsBijective(t *testing.T) {
	samples := []float64{0, math.Copysign(0, -1), 1, -1, math.NaN(), math.Inf(1), math.Inf(-1), 1e300, -1e-300}
	seen := make(map[uint64]float64, len(samples))
	for _, v := range samples {
		k := Key(v)
		if prev, dup := seen[k]; dup {
			t.Errorf("Key collision between %v and %v", prev, v)
		}
		seen[k] = v
	}
}

// The fixed special-value input must sort to the order obtained by
// independently encoding each literal, not to an assumed NaN placement.
func TestSortSpecialValues(t *testing.T) {
	values := []float64{5.0, math.Copysign(0, -1), 0.0, math.NaN(), -5.0, math.Inf(1), math.Inf(-1)}

	ref := make([]uint64, len(values))
	for i, v := range values {
		ref[i] = math.Float64bits(v)
	}
	sort.Slice(ref, func(i, j int) bool {
		return Key(math.Float64frombits(ref[i])) < Key(math.Float64frombits(ref[j]))
	})

	got := append([]float64(nil), values...)
	var trace Trace
	if err := Sort(got, &Config{Trace: &trace}); err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		if math.Float64bits(v) != ref[i] {
			t.Errorf("position %d: got bits %016x, want %016x", i, math.Float64bits(v), ref[i])
		}
	}
}
