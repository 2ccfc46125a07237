package fsort

import (
	"io"
	"os"

	"github.com/fsortio/fsort/runfile"
)

// SortFile sorts a binary float64 file into outputPath without ever holding
// the whole dataset in memory: the input is read in memory-budget sized
// chunks during run generation, and the merged result is streamed straight
// to the output file. Peak resident data stays near one chunk plus the I/O
// buffers. MemoryLimit of 0 falls back to a single chunk covering the file.
//
// Tie order among equal values follows read order, as on the external path
// of Sort. The output is written whole or not at all: on error the output
// file may be missing or truncated but never silently wrong.
func SortFile(inputPath, outputPath string, config *Config) error {
	cfg, err := mergeConfig(config)
	if err != nil {
		return err
	}
	if cfg.Trace != nil {
		cfg.Trace.Reset()
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return NewDiskError(err, "stat", inputPath)
	}
	if info.Size()%valueSize != 0 {
		return NewInputError("file size is not a multiple of 8 bytes", info.Size())
	}
	if info.Size() == 0 {
		return NewInputError("empty input", 0)
	}
	total := int(info.Size() / valueSize)

	dir := runfile.ScratchDir(cfg.TempDir)
	paths, err := generateRunsFromFile(inputPath, total, cfg, dir)
	if err != nil {
		return err
	}
	final, err := newRunMerger(cfg, dir).consolidate(paths)
	if err != nil {
		return err
	}
	return deliverRun(final, outputPath)
}

// generateRunsFromFile is the file-backed twin of generateRuns: chunks are
// filled from a streaming reader instead of a resident slice, so only one
// chunk of entries is in memory at a time.
func generateRunsFromFile(path string, total int, cfg *Config, dir string) ([]string, error) {
	chunkLen := cfg.chunkElements(total)

	r, err := runfile.Open(path, cfg.BufferElements)
	if err != nil {
		return nil, NewDiskError(err, "open input", path)
	}
	defer r.Close()

	paths := make([]string, 0, total/chunkLen+1)
	arr := make([]entry, 0, chunkLen)
	scratch := make([]entry, chunkLen)
	out := make([]float64, 0, chunkLen)

	offset := 0
	for offset < total {
		arr = arr[:0]
		for len(arr) < chunkLen {
			v, ok := r.Peek()
			if !ok {
				break
			}
			arr = append(arr, makeEntry(v, uint64(offset+len(arr))))
			if err := r.Next(); err != nil {
				return nil, NewDiskError(err, "read input", path)
			}
		}
		if len(arr) == 0 {
			break
		}
		sortEntries(arr, scratch[:len(arr)], cfg.Parallel, cfg.Trace)

		out = out[:0]
		for i := range arr {
			out = append(out, arr[i].value)
		}
		runPath, err := runfile.CreateRun(dir, out)
		if err != nil {
			return nil, NewDiskError(err, "write run", runPath)
		}
		paths = append(paths, runPath)
		offset += len(arr)
	}
	return paths, nil
}

// deliverRun copies the final run to outputPath and deletes the run file.
// The run format and the output format are both raw host-endian float64
// records, so the copy is a byte stream. A rename would be cheaper but does
// not cross filesystems, and the scratch dir is often on a different one.
func deliverRun(runPath, outputPath string) error {
	src, err := os.Open(runPath)
	if err != nil {
		return NewDiskError(err, "open final run", runPath)
	}
	defer src.Close()

	dst, err := os.Create(outputPath)
	if err != nil {
		return NewDiskError(err, "create output", outputPath)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return NewDiskError(err, "write output", outputPath)
	}
	if err := dst.Close(); err != nil {
		return NewDiskError(err, "close output", outputPath)
	}
	if err := os.Remove(runPath); err != nil {
		return NewDiskError(err, "remove", runPath)
	}
	return nil
}
