package fsort_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsortio/fsort"
)

// externalConfig forces the out-of-core path with a budget that yields at
// least five initial runs.
func externalConfig(t *testing.T, n int, strategy fsort.MergeStrategy) *fsort.Config {
	t.Helper()
	return &fsort.Config{
		External:       true,
		MemoryLimit:    n * 8 / 5,
		BufferElements: 64,
		Merge:          strategy,
		TempDir:        t.TempDir(),
	}
}

func TestExternalMatchesInMemory(t *testing.T) {
	const n = 2000
	base := testValues(n, 3)

	want := append([]float64(nil), base...)
	require.NoError(t, fsort.Sort(want, nil))

	for _, strategy := range []fsort.MergeStrategy{fsort.MergePairwise, fsort.MergeKWay} {
		got := append([]float64(nil), base...)
		cfg := externalConfig(t, n, strategy)
		require.NoError(t, fsort.Sort(got, cfg))
		requireSameBits(t, want, got)

		// every run file must be consumed and deleted
		left, err := os.ReadDir(cfg.TempDir)
		require.NoError(t, err)
		require.Empty(t, left, "leftover run files for strategy %v", strategy)
	}
}

func TestMergeStrategyEquivalence(t *testing.T) {
	const n = 3000
	base := testValues(n, 4)

	pairwise := append([]float64(nil), base...)
	require.NoError(t, fsort.Sort(pairwise, externalConfig(t, n, fsort.MergePairwise)))

	kway := append([]float64(nil), base...)
	require.NoError(t, fsort.Sort(kway, externalConfig(t, n, fsort.MergeKWay)))

	requireSameBits(t, pairwise, kway)
	requireTotalOrder(t, pairwise)
}

func TestExternalPermutation(t *testing.T) {
	const n = 1500
	data := testValues(n, 5)
	want := bitCounts(data)

	require.NoError(t, fsort.Sort(data, externalConfig(t, n, fsort.MergePairwise)))
	requireTotalOrder(t, data)
	require.Equal(t, want, bitCounts(data))
}

func TestMemoryLimitClamp(t *testing.T) {
	// a budget below one element degrades to single-element runs
	data := testValues(17, 6)
	want := bitCounts(data)

	cfg := &fsort.Config{
		External:    true,
		MemoryLimit: 1,
		TempDir:     t.TempDir(),
	}
	require.NoError(t, fsort.Sort(data, cfg))
	requireTotalOrder(t, data)
	require.Equal(t, want, bitCounts(data))
}

func TestExternalOddRunCount(t *testing.T) {
	// seven runs exercises the odd-carry path of the pairwise rounds
	const n = 700
	data := testValues(n, 7)
	cfg := &fsort.Config{
		External:       true,
		MemoryLimit:    100 * 8,
		BufferElements: 16,
		TempDir:        t.TempDir(),
	}
	require.NoError(t, fsort.Sort(data, cfg))
	requireTotalOrder(t, data)
}

func TestExternalTrace(t *testing.T) {
	const n = 1000
	data := testValues(n, 8)

	var trace fsort.Trace
	cfg := externalConfig(t, n, fsort.MergePairwise)
	cfg.Trace = &trace
	require.NoError(t, fsort.Sort(data, cfg))

	require.GreaterOrEqual(t, trace.Segments(), int64(1))
	require.Greater(t, trace.Phi(), 0.0)
	require.LessOrEqual(t, trace.Phi(), float64(trace.Segments()))
}

func TestExternalParallelChunks(t *testing.T) {
	const n = 2000
	base := testValues(n, 9)

	want := append([]float64(nil), base...)
	require.NoError(t, fsort.Sort(want, nil))

	got := append([]float64(nil), base...)
	cfg := externalConfig(t, n, fsort.MergeKWay)
	cfg.Parallel = true
	require.NoError(t, fsort.Sort(got, cfg))
	requireSameBits(t, want, got)
}
