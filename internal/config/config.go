package config

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"time"

	apperrors "github.com/mlebl/timekit/internal/errors"
)

// EnvPrefix is prepended to every environment variable consumed by the
// application.
const EnvPrefix = "TIMEBENCH_"

// Default values applied before flags and environment overrides.
const (
	DefaultWorkloads  = "sleep:1ms"
	DefaultIterations = 100
	DefaultWarmup     = 5
	DefaultMinTime    = time.Second
	DefaultTimeout    = 2 * time.Minute
)

// AppConfig holds the complete runtime configuration of a benchmark run.
type AppConfig struct {
	// Workloads is the comma-separated workload specification,
	// e.g. "sleep:2ms,spin:500us,alloc:1048576".
	Workloads string
	// Iterations is the number of timed iterations per workload. When zero,
	// the iteration count is tuned automatically until MinTime is spent.
	Iterations int
	// Workers is the number of workloads executed concurrently.
	Workers int
	// Warmup is the number of untimed iterations run before measurement.
	Warmup int
	// MinTime is the measurement budget per workload used when Iterations
	// is zero.
	MinTime time.Duration
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Quiet suppresses everything but the final results.
	Quiet bool
	// Verbose enables per-iteration logging.
	Verbose bool
	// TUI enables the live dashboard.
	TUI bool
	// NoColor disables colored output.
	NoColor bool
	// MetricsAddr is the listen address of the Prometheus endpoint
	// (empty disables it).
	MetricsAddr string
}

// NewDefaultConfig returns an AppConfig populated with default values.
func NewDefaultConfig() AppConfig {
	return AppConfig{
		Workloads:  DefaultWorkloads,
		Iterations: DefaultIterations,
		Workers:    runtime.NumCPU(),
		Warmup:     DefaultWarmup,
		MinTime:    DefaultMinTime,
		Timeout:    DefaultTimeout,
	}
}

// ParseConfig parses command-line flags into an AppConfig, applying
// environment variable overrides for flags not explicitly set.
// Priority: CLI flags > Environment variables > Defaults.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for flag error and usage output.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: A ConfigError (or flag.ErrHelp) when parsing or validation fails.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := NewDefaultConfig()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Workloads, "workloads", cfg.Workloads,
		"comma-separated workload spec, e.g. \"sleep:2ms,spin:500us,alloc:1048576\"")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations,
		"timed iterations per workload (0 = auto-tune until -min-time is spent)")
	fs.IntVar(&cfg.Iterations, "i", cfg.Iterations, "shorthand for -iterations")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of workloads run concurrently")
	fs.IntVar(&cfg.Warmup, "warmup", cfg.Warmup, "untimed warmup iterations per workload")
	fs.DurationVar(&cfg.MinTime, "min-time", cfg.MinTime,
		"measurement budget per workload when -iterations is 0")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall run timeout")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress everything but final results")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log each timed iteration")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for -verbose")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "run with the live dashboard")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr,
		"listen address for the Prometheus endpoint (empty disables)")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Times configurable workloads and reports latency statistics.\n\n")
		fmt.Fprintf(errWriter, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables (prefix %s) override unset flags:\n", EnvPrefix)
		fmt.Fprintf(errWriter, "  WORKLOADS, ITERATIONS, WORKERS, WARMUP, MIN_TIME, TIMEOUT,\n")
		fmt.Fprintf(errWriter, "  QUIET, VERBOSE, TUI, NO_COLOR, METRICS_ADDR\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("parsing flags: %v", err)
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for internally inconsistent or
// out-of-range values.
func (c AppConfig) Validate() error {
	if c.Workloads == "" {
		return apperrors.ValidationError{Field: "workloads", Message: "must not be empty"}
	}
	if c.Iterations < 0 {
		return apperrors.ValidationError{Field: "iterations", Message: "must not be negative"}
	}
	if c.Iterations == 0 && c.MinTime <= 0 {
		return apperrors.ValidationError{Field: "min-time", Message: "must be positive when iterations is 0"}
	}
	if c.Workers < 1 {
		return apperrors.ValidationError{Field: "workers", Message: "must be at least 1"}
	}
	if c.Warmup < 0 {
		return apperrors.ValidationError{Field: "warmup", Message: "must not be negative"}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("-quiet and -tui are mutually exclusive")
	}
	return nil
}
