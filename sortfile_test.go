package fsort_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsortio/fsort"
	"github.com/fsortio/fsort/runfile"
)

func TestSortFileMatchesInMemory(t *testing.T) {
	const n = 2000
	base := testValues(n, 11)

	dir := t.TempDir()
	input := filepath.Join(dir, "input.bin")
	output := filepath.Join(dir, "output.bin")
	require.NoError(t, runfile.WriteRun(input, base))

	want := append([]float64(nil), base...)
	require.NoError(t, fsort.Sort(want, nil))

	for _, strategy := range []fsort.MergeStrategy{fsort.MergePairwise, fsort.MergeKWay} {
		cfg := externalConfig(t, n, strategy)
		require.NoError(t, fsort.SortFile(input, output, cfg))

		got, err := runfile.ReadRun(output)
		require.NoError(t, err)
		requireSameBits(t, want, got)

		// runs and the final copy source must all be swept
		left, err := os.ReadDir(cfg.TempDir)
		require.NoError(t, err)
		require.Empty(t, left, "leftover run files for strategy %v", strategy)
	}
}

func TestSortFileChunked(t *testing.T) {
	// a budget of 100 elements over 700 forces multiple file-fed chunks
	const n = 700
	base := testValues(n, 12)

	dir := t.TempDir()
	input := filepath.Join(dir, "input.bin")
	output := filepath.Join(dir, "output.bin")
	require.NoError(t, runfile.WriteRun(input, base))

	cfg := &fsort.Config{
		MemoryLimit:    100 * 8,
		BufferElements: 16,
		TempDir:        t.TempDir(),
	}
	require.NoError(t, fsort.SortFile(input, output, cfg))

	got, err := runfile.ReadRun(output)
	require.NoError(t, err)
	requireTotalOrder(t, got)
	require.Equal(t, bitCounts(base), bitCounts(got))
}

func TestSortFileTrace(t *testing.T) {
	const n = 1000
	base := testValues(n, 13)

	dir := t.TempDir()
	input := filepath.Join(dir, "input.bin")
	require.NoError(t, runfile.WriteRun(input, base))

	var trace fsort.Trace
	cfg := externalConfig(t, n, fsort.MergePairwise)
	cfg.Trace = &trace
	require.NoError(t, fsort.SortFile(input, filepath.Join(dir, "output.bin"), cfg))

	require.GreaterOrEqual(t, trace.Segments(), int64(1))
	require.Greater(t, trace.Phi(), 0.0)
	require.LessOrEqual(t, trace.Phi(), float64(trace.Segments()))
}

func TestSortFileRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.bin")

	empty := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	var inputErr *fsort.InputError
	require.ErrorAs(t, fsort.SortFile(empty, out, nil), &inputErr)

	ragged := filepath.Join(dir, "ragged.bin")
	require.NoError(t, os.WriteFile(ragged, make([]byte, 12), 0o644))
	require.ErrorAs(t, fsort.SortFile(ragged, out, nil), &inputErr)

	require.Error(t, fsort.SortFile(filepath.Join(dir, "missing.bin"), out, nil))
}
