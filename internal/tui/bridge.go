package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlebl/timekit/internal/bench"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// ForwardProgress drains the progress channel and forwards each update as a
// ProgressMsg with the aggregated average. It calls wg.Done on return.
func ForwardProgress(wg *sync.WaitGroup, progressChan <-chan bench.ProgressUpdate, numWorkloads int, ref *programRef) {
	defer wg.Done()

	if numWorkloads <= 0 {
		for range progressChan {
		}
		return
	}

	fractions := make([]float64, numWorkloads)
	for update := range progressChan {
		if update.WorkloadIndex >= 0 && update.WorkloadIndex < numWorkloads {
			fractions[update.WorkloadIndex] = update.Value
		}
		var total float64
		for _, f := range fractions {
			total += f
		}
		ref.Send(ProgressMsg{
			WorkloadIndex: update.WorkloadIndex,
			Value:         update.Value,
			Average:       total / float64(numWorkloads),
			LastSample:    update.LastSample,
		})
	}
	ref.Send(ProgressDoneMsg{})
}
