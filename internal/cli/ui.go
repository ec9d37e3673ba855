//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/mlebl/timekit/format"
	"github.com/mlebl/timekit/internal/bench"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// 200ms keeps the terminal calm while still feeling live.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the behavior of a terminal spinner. It decouples
// DisplayProgress from a specific spinner implementation, which keeps the
// progress loop testable without a TTY.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to implement the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate so animation and bar stay in sync
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState aggregates the progress of concurrent workload measurements.
// It tracks the completion fraction of each workload and computes the
// average, which drives the single consolidated progress bar.
type ProgressState struct {
	progresses   []float64
	numWorkloads int
}

// NewProgressState creates a ProgressState tracking numWorkloads workloads.
func NewProgressState(numWorkloads int) *ProgressState {
	return &ProgressState{
		progresses:   make([]float64, numWorkloads),
		numWorkloads: numWorkloads,
	}
}

// Update records a new completion fraction for one workload. Out-of-range
// indices are ignored.
//
// Parameters:
//   - index: The index of the workload (0 to numWorkloads-1).
//   - value: The completion fraction (0.0 to 1.0).
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average completion fraction across all
// tracked workloads.
func (ps *ProgressState) CalculateAverage() float64 {
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	if ps.numWorkloads == 0 {
		return 0.0
	}
	return total / float64(ps.numWorkloads)
}

// progressBar generates a textual progress bar of the given width.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress consumes updates from progressChan and renders a spinner
// with a consolidated progress bar until the channel is closed. It calls
// wg.Done on return so the caller can wait for the final render.
//
// Parameters:
//   - wg: WaitGroup the caller waits on; Done is called on return.
//   - progressChan: Channel receiving updates from the measurement loops.
//   - numWorkloads: The number of workloads being measured.
//   - out: Destination writer for the spinner output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan bench.ProgressUpdate, numWorkloads int, out io.Writer) {
	defer wg.Done()

	if numWorkloads <= 0 {
		for range progressChan {
		}
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	state := NewProgressState(numWorkloads)
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var lastSample int64
	render := func() {
		avg := state.CalculateAverage()
		suffix := fmt.Sprintf(" %s %5.1f%%", progressBar(avg, ProgressBarWidth), avg*100)
		if lastSample > 0 {
			suffix += fmt.Sprintf("  last %s", format.Pretty(lastSample))
		}
		sp.UpdateSuffix(suffix)
	}

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				render()
				return
			}
			state.Update(update.WorkloadIndex, update.Value)
			if update.LastSample > 0 {
				lastSample = update.LastSample
			}
		case <-ticker.C:
			render()
		}
	}
}
