package bench

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mlebl/timekit/clock"
	apperrors "github.com/mlebl/timekit/internal/errors"
)

// Workload is a unit of work whose latency the harness measures. Run must be
// safe to call repeatedly and should honor ctx cancellation for long bodies.
type Workload interface {
	// Name returns the identifier shown in results, e.g. "sleep:2ms".
	Name() string
	// Run performs one iteration of the workload.
	Run(ctx context.Context) error
}

// sleepWorkload parks the goroutine for a fixed duration. It measures timer
// and scheduler latency rather than CPU work.
type sleepWorkload struct {
	d time.Duration
}

func (w sleepWorkload) Name() string { return "sleep:" + w.d.String() }

func (w sleepWorkload) Run(ctx context.Context) error {
	t := time.NewTimer(w.d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// spinWorkload busy-waits on the monotonic clock for a fixed duration,
// keeping a core occupied for the whole interval.
type spinWorkload struct {
	d   time.Duration
	clk clock.Clock
}

func (w spinWorkload) Name() string { return "spin:" + w.d.String() }

func (w spinWorkload) Run(ctx context.Context) error {
	deadline := w.clk.Nanos() + w.d.Nanoseconds()
	for i := 0; w.clk.Nanos() < deadline; i++ {
		// Polling ctx on every spin would dominate the loop.
		if i%1024 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

// allocWorkload allocates and touches a byte slice, exercising the allocator
// and GC.
type allocWorkload struct {
	size int
}

func (w allocWorkload) Name() string { return fmt.Sprintf("alloc:%d", w.size) }

func (w allocWorkload) Run(_ context.Context) error {
	buf := make([]byte, w.size)
	for i := 0; i < len(buf); i += 512 {
		buf[i] = byte(i)
	}
	// Workloads run concurrently, so the allocation must stay observable
	// without shared state.
	runtime.KeepAlive(buf)
	return nil
}

// ParseWorkloads parses a comma-separated workload specification such as
// "sleep:2ms,spin:500us,alloc:1048576" into Workload values.
//
// Supported kinds:
//   - sleep:<duration>  park for the given duration
//   - spin:<duration>   busy-wait for the given duration
//   - alloc:<bytes>     allocate and touch a slice of the given size
//
// Returns a ConfigError naming the offending entry when the spec is invalid.
func ParseWorkloads(spec string) ([]Workload, error) {
	parts := strings.Split(spec, ",")
	workloads := make([]Workload, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind, arg, ok := strings.Cut(part, ":")
		if !ok {
			return nil, apperrors.NewConfigError("workload %q: missing argument, want kind:arg", part)
		}

		switch kind {
		case "sleep", "spin":
			d, err := time.ParseDuration(arg)
			if err != nil {
				return nil, apperrors.NewConfigError("workload %q: invalid duration %q", part, arg)
			}
			if d <= 0 {
				return nil, apperrors.NewConfigError("workload %q: duration must be positive", part)
			}
			if kind == "sleep" {
				workloads = append(workloads, sleepWorkload{d: d})
			} else {
				workloads = append(workloads, spinWorkload{d: d, clk: clock.System{}})
			}
		case "alloc":
			size, err := strconv.Atoi(arg)
			if err != nil || size <= 0 {
				return nil, apperrors.NewConfigError("workload %q: invalid size %q", part, arg)
			}
			workloads = append(workloads, allocWorkload{size: size})
		default:
			return nil, apperrors.NewConfigError("workload %q: unknown kind %q", part, kind)
		}
	}

	if len(workloads) == 0 {
		return nil, apperrors.NewConfigError("workload spec %q contains no workloads", spec)
	}
	return workloads, nil
}
