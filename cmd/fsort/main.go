// Command fsort sorts, generates, and verifies binary files of float64
// values ordered under the IEEE-754 total order. Input and output files use
// the run-file format: raw 8-byte host-endian doubles, no header.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:           "fsort",
	Short:         "total-order sorter for binary float64 files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	logger = newLogger()
	defer logger.Sync()

	rootCmd.AddCommand(sortCmd, genCmd, verifyCmd)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("fatal", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zap.Must(cfg.Build())
}
