package main

import (
	"bufio"
	"encoding/binary"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagGenCount  int64
	flagGenSeed   int64
	flagGenNormal bool
)

var genCmd = &cobra.Command{
	Use:   "gen <output>",
	Short: "generate a synthetic binary float64 dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runGen,
}

func init() {
	f := genCmd.Flags()
	f.Int64Var(&flagGenCount, "count", 1_000_000, "number of values to generate")
	f.Int64Var(&flagGenSeed, "seed", 1, "PRNG seed")
	f.BoolVar(&flagGenNormal, "normal", false, "draw standard-normal values instead of uniform [0,1)")
}

func runGen(cmd *cobra.Command, args []string) error {
	output := args[0]
	rng := rand.New(rand.NewSource(flagGenSeed))

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	w := bufio.NewWriterSize(f, 1<<16)

	start := time.Now()
	var scratch [8]byte
	for i := int64(0); i < flagGenCount; i++ {
		var v float64
		if flagGenNormal {
			v = rng.NormFloat64()
		} else {
			v = rng.Float64()
		}
		binary.NativeEndian.PutUint64(scratch[:], math.Float64bits(v))
		if _, err := w.Write(scratch[:]); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("dataset generated",
		zap.String("path", output),
		zap.String("values", humanize.Comma(flagGenCount)),
		zap.String("size", humanize.IBytes(uint64(flagGenCount*8))),
		zap.Bool("normal", flagGenNormal),
		zap.Int64("seed", flagGenSeed),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
