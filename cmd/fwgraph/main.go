// fwgraph runs and describes the bundled example state machines and
// procedures on the fixed-rate realtime executive.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var logLevel string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fwgraph",
	Short: "Run and inspect fwgraph state machines and procedures",
	Long: `fwgraph drives the bundled example models on a deterministic cyclic
executive and prints their configuration as YAML or Graphviz DOT.

Models: ` + modelList() + `

Examples:
  fwgraph describe switch
  fwgraph describe --format dot --out ./graphs
  fwgraph run --ticks 20 --tick-rate 5ms
  fwgraph run --config run.yaml --report-dir ./reports`,
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the run file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(describeCmd)
}

// newLogger logs to stderr at level, falling back to info.
func newLogger(level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "fwgraph",
	}), nil
}
