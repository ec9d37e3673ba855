package app

import (
	"context"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mlebl/timekit/internal/bench"
	"github.com/mlebl/timekit/internal/cli"
	"github.com/mlebl/timekit/internal/logging"
	"github.com/mlebl/timekit/internal/metrics"
	"github.com/mlebl/timekit/internal/server"
	"github.com/mlebl/timekit/internal/sysmon"
	"github.com/mlebl/timekit/timing"
)

// runBench orchestrates the execution of a CLI benchmark run.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	// Lifecycle: overall timeout + signal handling
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	workloads, err := bench.ParseWorkloads(a.Config.Workloads)
	if err != nil {
		return cli.HandleRunError(err, a.ErrWriter)
	}

	var logger logging.Logger
	if a.Config.Quiet {
		logger = logging.NewLogger(io.Discard, "bench")
	} else {
		logger = logging.NewDefaultLogger()
	}

	// Optional metrics endpoint for the duration of the run
	var runnerOpts []bench.RunnerOption
	if a.Config.MetricsAddr != "" {
		m := server.NewMetrics()
		srv := server.NewServer(a.Config.MetricsAddr, logger, m)
		go func() {
			if srvErr := srv.Start(ctx); srvErr != nil {
				logger.Error("metrics server failed", srvErr)
			}
		}()
		runnerOpts = append(runnerOpts, bench.WithObserver(m.ObserveIteration))
	}

	runner := bench.NewRunner(a.Config, logger, runnerOpts...)

	if !a.Config.Quiet {
		cli.DisplayRunHeader(out, sysmon.DescribeHost(), workloads, a.Config.Workers)
	}

	progressChan := make(chan bench.ProgressUpdate, len(workloads)*bench.ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	if a.Config.Quiet {
		// Zero workloads tells DisplayProgress to drain without rendering
		go cli.DisplayProgress(&displayWg, progressChan, 0, io.Discard)
	} else {
		go cli.DisplayProgress(&displayWg, progressChan, len(workloads), out)
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	var totalNs int64
	results, _ := timing.Time(func(ns int64) {
		totalNs = ns
	}, func() ([]bench.Result, error) {
		return runner.Execute(ctx, workloads, progressChan), nil
	})
	displayWg.Wait()

	if a.Config.Quiet {
		cli.DisplayQuietResults(results, out)
	} else {
		cli.DisplayResultsTable(results, out)
		cli.DisplayTotals(results, totalNs, out)
		cli.DisplayMemoryStats(collector.Snapshot().Since(before), out)
	}

	return cli.HandleRunError(firstFailure(ctx, results), a.ErrWriter)
}

// firstFailure picks the error that should decide the exit code. A dead run
// context wins so timeouts and interrupts map to their dedicated codes.
func firstFailure(ctx context.Context, results []bench.Result) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}
