package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fsortio/fsort"
	"github.com/fsortio/fsort/runfile"
)

var (
	flagExternal bool
	flagParallel bool
	flagTrace    bool
	flagKWay     bool
	flagMemLimit string
	flagBuffer   int
	flagTmpDir   string
)

var sortCmd = &cobra.Command{
	Use:   "sort <input> <output>",
	Short: "sort a binary float64 file under the IEEE-754 total order",
	Args:  cobra.ExactArgs(2),
	RunE:  runSort,
}

func init() {
	f := sortCmd.Flags()
	f.BoolVar(&flagExternal, "external", false, "force the external merge-sort path")
	f.BoolVar(&flagParallel, "parallel", false, "sort in-memory chunks with concurrent tasks")
	f.BoolVar(&flagTrace, "trace", false, "report merge curvature after sorting")
	f.BoolVar(&flagKWay, "kway", false, "consolidate runs with the k-way merge instead of pairwise rounds")
	f.StringVar(&flagMemLimit, "mem-limit", "1GiB", "memory budget for the external path")
	f.IntVar(&flagBuffer, "buffer", 0, "run I/O buffer size in elements (0 for default)")
	f.StringVar(&flagTmpDir, "tmpdir", "", "scratch directory for run files")
}

// parseMemLimit converts a human-readable byte size into an int budget.
// ParseBytes returns a uint64, which can exceed the int range on 32-bit
// platforms and wrap negative on a bare conversion.
func parseMemLimit(s string) (int, error) {
	v, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --mem-limit %q: %w", s, err)
	}
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("--mem-limit %q exceeds the addressable byte range", s)
	}
	return int(v), nil
}

func runSort(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	memLimit, err := parseMemLimit(flagMemLimit)
	if err != nil {
		return err
	}

	info, err := os.Stat(input)
	if err != nil {
		return err
	}
	if info.Size()%8 != 0 {
		return fsort.NewInputError("file size is not a multiple of 8 bytes", info.Size())
	}

	cfg := fsort.DefaultConfig()
	cfg.External = flagExternal
	cfg.Parallel = flagParallel
	cfg.MemoryLimit = memLimit
	cfg.TempDir = flagTmpDir
	if flagBuffer > 0 {
		cfg.BufferElements = flagBuffer
	}
	if flagKWay {
		cfg.Merge = fsort.MergeKWay
	}
	var trace fsort.Trace
	if flagTrace {
		cfg.Trace = &trace
	}

	if flagExternal {
		// file-to-file path: the input is read in budget-sized chunks and
		// the merged result streams straight to the output file
		sortStart := time.Now()
		if err := fsort.SortFile(input, output, cfg); err != nil {
			return err
		}
		logger.Info("external sort complete",
			zap.String("input", input),
			zap.String("output", output),
			zap.String("size", humanize.IBytes(uint64(info.Size()))),
			zap.Duration("elapsed", time.Since(sortStart)))
		logTrace(&trace)
		return nil
	}

	loadStart := time.Now()
	data, err := runfile.ReadRun(input)
	if err != nil {
		return err
	}
	logger.Info("input loaded",
		zap.String("path", input),
		zap.Int("values", len(data)),
		zap.String("size", humanize.IBytes(uint64(info.Size()))),
		zap.Duration("elapsed", time.Since(loadStart)))

	sortStart := time.Now()
	if err := fsort.Sort(data, cfg); err != nil {
		return err
	}
	logger.Info("sort complete",
		zap.Bool("parallel", flagParallel),
		zap.Duration("elapsed", time.Since(sortStart)))
	logTrace(&trace)

	writeStart := time.Now()
	if err := runfile.WriteRun(output, data); err != nil {
		return err
	}
	logger.Info("output written",
		zap.String("path", output),
		zap.Duration("elapsed", time.Since(writeStart)))
	return nil
}

func logTrace(trace *fsort.Trace) {
	if !flagTrace {
		return
	}
	logger.Info("curvature trace",
		zap.Float64("phi", trace.Phi()),
		zap.Int64("segments", trace.Segments()))
}
