package fsort

import (
	"os"

	"github.com/fsortio/fsort/runfile"
)

// runMerger consolidates a list of sorted run files into a single run file,
// deleting consumed inputs. Both implementations must produce identical
// value sequences for the same run partition.
type runMerger interface {
	consolidate(paths []string) (string, error)
}

// sortExternal drives the three-phase out-of-core pipeline from a single
// control goroutine: chunked run generation, run consolidation under the
// configured strategy, and streaming the final run back into data. Run files
// live only for the duration of this call; on a fatal error the files
// created so far are not swept.
func sortExternal(data []float64, cfg *Config) error {
	dir := runfile.ScratchDir(cfg.TempDir)

	paths, err := generateRuns(data, cfg, dir)
	if err != nil {
		return err
	}

	final, err := newRunMerger(cfg, dir).consolidate(paths)
	if err != nil {
		return err
	}

	return materialize(final, data, cfg.BufferElements)
}

// newRunMerger builds the consolidation strategy for cfg over scratch dir.
func newRunMerger(cfg *Config, dir string) runMerger {
	if cfg.Merge == MergeKWay {
		return &kwayMerger{bufferElements: cfg.BufferElements, dir: dir}
	}
	return &pairwiseMerger{bufferElements: cfg.BufferElements, dir: dir, trace: cfg.Trace}
}

// generateRuns partitions data into memory-budget sized chunks, sorts each
// chunk with the in-memory engine, and flushes it to its own run file. Each
// run's content is sorted; the order of the returned list is irrelevant to
// correctness.
func generateRuns(data []float64, cfg *Config, dir string) ([]string, error) {
	chunkLen := cfg.chunkElements(len(data))
	paths := make([]string, 0, len(data)/chunkLen+1)

	arr := make([]entry, 0, chunkLen)
	scratch := make([]entry, chunkLen)
	out := make([]float64, 0, chunkLen)

	for offset := 0; offset < len(data); offset += chunkLen {
		end := offset + chunkLen
		if end > len(data) {
			end = len(data)
		}
		arr = arr[:0]
		for i, v := range data[offset:end] {
			arr = append(arr, makeEntry(v, uint64(offset+i)))
		}
		sortEntries(arr, scratch[:len(arr)], cfg.Parallel, cfg.Trace)

		out = out[:0]
		for i := range arr {
			out = append(out, arr[i].value)
		}
		path, err := runfile.CreateRun(dir, out)
		if err != nil {
			return nil, NewDiskError(err, "write run", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// materialize streams the final run back into the caller's buffer in order,
// then deletes the file.
func materialize(path string, data []float64, bufferElements int) error {
	r, err := runfile.Open(path, bufferElements)
	if err != nil {
		return NewDiskError(err, "open final run", path)
	}
	for i := 0; i < len(data); i++ {
		v, ok := r.Peek()
		if !ok {
			break
		}
		data[i] = v
		if err := r.Next(); err != nil {
			r.Close()
			return NewDiskError(err, "read final run", path)
		}
	}
	if err := r.Close(); err != nil {
		return NewDiskError(err, "close final run", path)
	}
	if err := os.Remove(path); err != nil {
		return NewDiskError(err, "remove", path)
	}
	return nil
}
