package bench

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mlebl/timekit/internal/config"
	apperrors "github.com/mlebl/timekit/internal/errors"
	"github.com/mlebl/timekit/internal/logging"
	"github.com/mlebl/timekit/internal/stats"
	"github.com/mlebl/timekit/timing"
)

// ProgressUpdate carries the state of one workload's measurement loop to the
// progress consumer (CLI spinner or TUI dashboard).
type ProgressUpdate struct {
	// WorkloadIndex identifies the workload within the run.
	WorkloadIndex int
	// Value is the completion fraction, 0.0 to 1.0.
	Value float64
	// LastSample is the most recent iteration latency in nanoseconds.
	LastSample int64
}

// Result encapsulates the outcome of measuring a single workload. It is the
// shared domain type between the runner and the presentation layers.
type Result struct {
	// Name is the identifier of the workload (e.g. "sleep:2ms").
	Name string
	// Samples are the per-iteration latencies in nanoseconds.
	Samples []int64
	// Summary is the aggregate over Samples.
	Summary stats.Summary
	// Elapsed is the wall time of the whole measurement loop.
	Elapsed time.Duration
	// Err contains any error that interrupted the measurement.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// measurement goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// autoIterationCap bounds the auto-tuned iteration count so a pathologically
// fast workload cannot grow the sample slice without limit.
const autoIterationCap = 1_000_000

// Observer is an optional per-iteration hook, used to feed metrics sinks.
type Observer func(workload string, ns int64)

// Runner measures workloads according to an AppConfig.
type Runner struct {
	cfg     config.AppConfig
	log     logging.Logger
	observe Observer
}

// RunnerOption configures a Runner during construction.
type RunnerOption func(*Runner)

// WithObserver registers a per-iteration observer hook.
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) { r.observe = o }
}

// NewRunner creates a Runner. A nil logger falls back to the default logger.
func NewRunner(cfg config.AppConfig, log logging.Logger, opts ...RunnerOption) *Runner {
	if log == nil {
		log = logging.NewDefaultLogger()
	}
	r := &Runner{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute measures all workloads, at most cfg.Workers concurrently, and
// returns one Result per workload in input order. Progress updates are sent
// to progressChan, which is closed when every workload has finished.
//
// Cancellation is checked between iterations: a canceled context stops the
// measurement loops and surfaces the context error in the affected Results.
func (r *Runner) Execute(ctx context.Context, workloads []Workload, progressChan chan<- ProgressUpdate) []Result {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	results := make([]Result, len(workloads))

	for i, w := range workloads {
		idx, workload := i, w
		g.Go(func() error {
			results[idx] = r.measure(ctx, idx, workload, progressChan)
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	return results
}

// measure runs the warmup and measurement loop for a single workload.
func (r *Runner) measure(ctx context.Context, idx int, w Workload, progressChan chan<- ProgressUpdate) Result {
	res := Result{Name: w.Name()}
	startTime := time.Now()
	defer func() {
		res.Elapsed = time.Since(startTime)
		res.Summary = stats.Summarize(res.Samples)
	}()

	for i := 0; i < r.cfg.Warmup; i++ {
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			return res
		}
		if err := w.Run(ctx); err != nil {
			res.Err = apperrors.BenchError{Workload: w.Name(), Cause: err}
			return res
		}
	}

	iterations := r.cfg.Iterations
	budget := int64(0)
	if iterations == 0 {
		iterations = autoIterationCap
		budget = r.cfg.MinTime.Nanoseconds()
	}
	res.Samples = make([]int64, 0, min(iterations, 4096))

	var spent int64
	for i := 0; i < iterations; i++ {
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			return res
		}

		_, err := timing.Time(func(ns int64) {
			res.Samples = append(res.Samples, ns)
			spent += ns
			if r.observe != nil {
				r.observe(w.Name(), ns)
			}
			if r.cfg.Verbose {
				r.log.Debug("iteration timed",
					logging.String("workload", w.Name()),
					logging.Int("iteration", i),
					logging.Int64("elapsed_ns", ns))
			}
			sendProgress(progressChan, ProgressUpdate{
				WorkloadIndex: idx,
				Value:         completion(i+1, iterations, spent, budget),
				LastSample:    ns,
			})
		}, func() (struct{}, error) {
			return struct{}{}, w.Run(ctx)
		})
		if err != nil {
			if apperrors.IsContextError(err) {
				res.Err = err
			} else {
				res.Err = apperrors.BenchError{Workload: w.Name(), Cause: err}
			}
			return res
		}

		if budget > 0 && spent >= budget {
			break
		}
	}

	r.log.Info("workload measured",
		logging.String("workload", w.Name()),
		logging.Int("samples", len(res.Samples)),
		logging.Int64("total_ns", spent))
	return res
}

// completion computes the progress fraction for either fixed-iteration or
// time-budget mode.
func completion(done, total int, spent, budget int64) float64 {
	var v float64
	if budget > 0 {
		v = float64(spent) / float64(budget)
	} else {
		v = float64(done) / float64(total)
	}
	if v > 1.0 {
		v = 1.0
	}
	return v
}

// sendProgress delivers an update without ever blocking the measurement
// loop; a full channel drops the update.
func sendProgress(ch chan<- ProgressUpdate, u ProgressUpdate) {
	select {
	case ch <- u:
	default:
	}
}
