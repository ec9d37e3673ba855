package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/mlebl/timekit/format"
	"github.com/mlebl/timekit/internal/bench"
	apperrors "github.com/mlebl/timekit/internal/errors"
	"github.com/mlebl/timekit/internal/metrics"
	"github.com/mlebl/timekit/internal/sysmon"
	"github.com/mlebl/timekit/internal/ui"
)

// DisplayRunHeader prints the host description and run parameters before the
// measurement starts.
//
// Parameters:
//   - out: The output writer.
//   - host: Host description from sysmon.DescribeHost.
//   - workloads: The workloads about to be measured.
//   - workers: The concurrency limit for the run.
func DisplayRunHeader(out io.Writer, host sysmon.Host, workloads []bench.Workload, workers int) {
	fmt.Fprintf(out, "%stimebench%s on %s%s%s (%d cores), %s%d workload(s)%s, %d worker(s)\n",
		ui.ColorBold(), ui.ColorReset(),
		ui.ColorCyan(), host.CPUModel, ui.ColorReset(), host.LogicalCores,
		ui.ColorMagenta(), len(workloads), ui.ColorReset(), workers)
	for _, w := range workloads {
		fmt.Fprintf(out, "  %s%s%s\n", ui.ColorBlue(), w.Name(), ui.ColorReset())
	}
	fmt.Fprintln(out)
}

// DisplayResultsTable renders the per-workload latency summaries as a table.
// Durations are rendered with format.Pretty so columns stay readable across
// nanosecond and multi-second workloads.
func DisplayResultsTable(results []bench.Result, out io.Writer) {
	table := tablewriter.NewWriter(out)
	table.Header("Workload", "Samples", "Min", "P50", "P95", "P99", "Max", "Mean", "StdDev", "Status")

	for _, res := range results {
		status := "ok"
		if res.Err != nil {
			status = fmt.Sprintf("failed: %v", res.Err)
		}
		s := res.Summary
		table.Append(
			res.Name,
			strconv.Itoa(s.Count),
			format.Pretty(s.Min),
			format.Pretty(s.P50),
			format.Pretty(s.P95),
			format.Pretty(s.P99),
			format.Pretty(s.Max),
			format.Pretty(int64(s.Mean)),
			format.Pretty(int64(s.StdDev)),
			status,
		)
	}
	table.Render()
}

// DisplayTotals prints the wall time of the whole run and a one-line verdict.
func DisplayTotals(results []bench.Result, totalNs int64, out io.Writer) {
	failures := 0
	for _, res := range results {
		if res.Err != nil {
			failures++
		}
	}
	fmt.Fprintf(out, "\nTotal run time: %s%s%s\n", ui.ColorYellow(), format.Pretty(totalNs), ui.ColorReset())
	if failures == 0 {
		fmt.Fprintf(out, "%s✅ all workloads succeeded%s\n", ui.ColorGreen(), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "%s❌ %d workload(s) failed%s\n", ui.ColorRed(), failures, ui.ColorReset())
	}
}

// DisplayMemoryStats shows what the runtime allocated during the run.
func DisplayMemoryStats(delta metrics.Delta, out io.Writer) {
	fmt.Fprintf(out, "\n%sMemory:%s\n", ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(out, "  Allocated: %s%s%s\n", ui.ColorCyan(), format.Bytes(delta.AllocatedBytes), ui.ColorReset())
	fmt.Fprintf(out, "  GC cycles: %d\n", delta.GCCycles)
	if delta.GCPauseNs > 0 {
		fmt.Fprintf(out, "  GC pause:  %s%s%s\n", ui.ColorCyan(), format.Pretty(int64(delta.GCPauseNs)), ui.ColorReset())
	}
}

// DisplayQuietResults emits one machine-friendly line per workload, suitable
// for scripting: name, sample count, then mean/p50/p95/max in nanoseconds.
func DisplayQuietResults(results []bench.Result, out io.Writer) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "%s error %v\n", res.Name, res.Err)
			continue
		}
		s := res.Summary
		fmt.Fprintf(out, "%s %d %d %d %d %d\n", res.Name, s.Count, int64(s.Mean), s.P50, s.P95, s.Max)
	}
}

// HandleRunError reports a run-level error to the writer and returns the
// process exit code for it.
//
// Returns:
//   - int: The exit code mapped by the errors package.
func HandleRunError(err error, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	if apperrors.IsContextError(err) {
		fmt.Fprintf(out, "%sRun interrupted: %v%s\n", ui.ColorYellow(), err, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return apperrors.ExitCodeFor(err)
}
