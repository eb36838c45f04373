package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/neuppl/are-we-sdd-yet/internal/config"
	"github.com/neuppl/are-we-sdd-yet/internal/logging"
	"github.com/neuppl/are-we-sdd-yet/internal/metrics"
	"github.com/neuppl/are-we-sdd-yet/internal/report"
	"github.com/neuppl/are-we-sdd-yet/internal/result"
	"github.com/neuppl/are-we-sdd-yet/internal/runner"
	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

var (
	flagFiles      []string
	flagMode       string
	flagOutput     string
	flagParallel   int
	flagTimeout    time.Duration
	flagMetricsOut string
	flagToolPaths  = map[string]*string{}
)

// Families with a --path-to-<family> override flag.
var pathFlagFamilies = []string{"rsdd", "sdd", "cnf2obdd"}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Benchmark every input file with every configured tool",
		RunE:  runBenchmark,
	}
	cmd.Flags().StringArrayVarP(&flagFiles, "files", "f", nil, "input CNF file or glob (repeatable)")
	cmd.Flags().StringVarP(&flagMode, "mode", "m", strategy.Default.ID(), "compilation strategy (right, left, best, best-bdd)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the JSON report to this file")
	cmd.Flags().IntVar(&flagParallel, "parallel", 1, "files benchmarked concurrently")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "per-invocation timeout (0 = none)")
	cmd.Flags().StringVar(&flagMetricsOut, "metrics-out", "", "write a Prometheus textfile with per-run metrics")
	for _, family := range pathFlagFamilies {
		p := new(string)
		flagToolPaths[family] = p
		cmd.Flags().StringVar(p, "path-to-"+family, "", "path to the "+family+" executable")
	}
	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	logger := logging.New(cmd.ErrOrStderr(), flagDebug)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	for _, family := range pathFlagFamilies {
		path := *flagToolPaths[family]
		if path == "" {
			continue
		}
		found, err := cfg.SetPath(family, path)
		if err != nil {
			return fmt.Errorf("--path-to-%s: %w", family, err)
		}
		if !found {
			logger.Warn("no configured tool uses this family", "flag", "--path-to-"+family)
		}
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = flagParallel
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = config.Duration(flagTimeout)
	}

	s, ok := strategy.Lookup(flagMode)
	if !ok {
		logger.Warn("unknown strategy, using default", "mode", flagMode, "default", strategy.Default.ID())
		s = strategy.Default
	}

	files, err := config.ExpandFiles(append(append([]string{}, flagFiles...), args...))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no input files given")
	}

	var (
		observer runner.Observer
		recorder *metrics.Recorder
	)
	if flagMetricsOut != "" {
		recorder = metrics.NewRecorder()
		observer = recorder
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	baseline, comparisons := cfg.Adapters(logger)
	batch, runErr := runner.RunBatch(ctx, &runner.Options{
		Files:       files,
		Strategy:    s,
		Baseline:    baseline,
		Comparisons: comparisons,
		Debug:       flagDebug,
		Parallel:    cfg.Parallel,
		Stderr:      cmd.ErrOrStderr(),
		Logger:      logger,
		Observer:    observer,
		Emit: func(rec *result.Record) error {
			if err := report.Render(out, rec); err != nil {
				return err
			}
			_, err := fmt.Fprintln(out)
			return err
		},
	})

	if recorder != nil {
		if err := recorder.WriteTextfile(flagMetricsOut); err != nil {
			logger.Error("metrics not written", "path", flagMetricsOut, "error", err)
		}
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return fmt.Errorf("interrupted after %d of %d files", len(batch), len(files))
		}
		return runErr
	}

	if flagOutput != "" {
		fmt.Fprintf(out, "Writing to %s...\n", flagOutput)
		if err := result.WriteBatch(flagOutput, batch); err != nil {
			return err
		}
	}
	return nil
}
