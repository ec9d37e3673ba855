// Package tui implements a live bubbletea dashboard for benchmark runs:
// per-workload progress bars, a latency sparkline, system load, and the
// final summary once all workloads finish.
package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlebl/timekit/format"
	"github.com/mlebl/timekit/internal/bench"
	"github.com/mlebl/timekit/internal/config"
	apperrors "github.com/mlebl/timekit/internal/errors"
	"github.com/mlebl/timekit/internal/logging"
	"github.com/mlebl/timekit/internal/sysmon"
)

const (
	// latencyHistorySize is the number of samples kept for the sparkline.
	latencyHistorySize = 60
	// sysHistorySize is the number of CPU/memory samples kept.
	sysHistorySize = 30
	// workloadBarWidth is the width of each per-workload progress bar.
	workloadBarWidth = 30
	tickInterval     = 500 * time.Millisecond
)

// ExecutionState holds the run-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	workloads  []bench.Workload
	generation uint64
	done       bool
	exitCode   int
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	ExecutionState

	keymap  KeyMap
	version string

	width  int
	height int

	progress   []float64
	average    float64
	lastSample int64
	latency    *RingBuffer
	cpu        *RingBuffer
	mem        *RingBuffer
	goroutines int
	heapAlloc  uint64
	results    []bench.Result
	startTime  time.Time

	parentCtx context.Context
	config    config.AppConfig
	ref       *programRef
	paused    bool
}

// NewModel creates a new dashboard model.
func NewModel(parentCtx context.Context, workloads []bench.Workload, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	return Model{
		ExecutionState: ExecutionState{
			ctx:       ctx,
			cancel:    cancel,
			workloads: workloads,
			exitCode:  apperrors.ExitSuccess,
		},
		keymap:    DefaultKeyMap(),
		version:   version,
		progress:  make([]float64, len(workloads)),
		latency:   NewRingBuffer(latencyHistorySize),
		cpu:       NewRingBuffer(sysHistorySize),
		mem:       NewRingBuffer(sysHistorySize),
		startTime: time.Now(),
		parentCtx: parentCtx,
		config:    cfg,
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.workloads, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProgressMsg:
		if !m.paused {
			if msg.WorkloadIndex >= 0 && msg.WorkloadIndex < len(m.progress) {
				m.progress[msg.WorkloadIndex] = msg.Value
			}
			m.average = msg.Average
			if msg.LastSample > 0 {
				m.lastSample = msg.LastSample
				m.latency.Push(float64(msg.LastSample))
			}
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.heapAlloc = msg.Alloc
		m.goroutines = msg.NumGoroutine
		return m, nil

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from previous run
		}
		m.done = true
		m.results = msg.Results
		m.exitCode = msg.ExitCode
		for i := range m.progress {
			m.progress[i] = 1.0
		}
		m.average = 1.0
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from previous run
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.progress = make([]float64, len(m.workloads))
		m.average = 0
		m.lastSample = 0
		m.latency.Reset()
		m.results = nil
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess
		m.startTime = time.Now()

		return m, tea.Batch(
			tickCmd(),
			startRunCmd(m.ref, m.ctx, m.workloads, m.config, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.viewWorkloads(),
		m.viewSystem(),
		m.viewFooter(),
	)
}

func (m Model) viewHeader() string {
	status := statusRunningStyle.Render("RUNNING")
	if m.paused {
		status = statusPausedStyle.Render("PAUSED")
	}
	if m.done {
		status = statusDoneStyle.Render("DONE")
	}
	elapsed := time.Since(m.startTime).Truncate(100 * time.Millisecond)
	return headerStyle.Render("timebench") +
		versionStyle.Render(" "+m.version) +
		"  " + status +
		metricLabelStyle.Render("  elapsed ") + metricValueStyle.Render(elapsed.String())
}

func (m Model) viewWorkloads() string {
	var lines []string
	nameWidth := 0
	for _, w := range m.workloads {
		if len(w.Name()) > nameWidth {
			nameWidth = len(w.Name())
		}
	}
	for i, w := range m.workloads {
		bar := renderBar(m.progress[i], workloadBarWidth)
		line := fmt.Sprintf("%s %s %5.1f%%",
			workloadStyle.Render(fmt.Sprintf("%-*s", nameWidth, w.Name())),
			barStyle.Render(bar),
			m.progress[i]*100)
		lines = append(lines, line)
	}

	if m.done && len(m.results) > 0 {
		lines = append(lines, "")
		for _, res := range m.results {
			lines = append(lines, renderResultLine(res, nameWidth))
		}
	} else if m.lastSample > 0 {
		lines = append(lines, "",
			metricLabelStyle.Render("latency ")+
				sparklineStyle.Render(RenderSparkline(m.latency.Slice()))+
				metricValueStyle.Render("  "+format.Pretty(m.lastSample)))
	}

	return panelStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) viewSystem() string {
	line := metricLabelStyle.Render("cpu ") +
		sysSparklineStyle.Render(RenderSparkline(m.cpu.Slice())) +
		metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", m.cpu.Last())) +
		metricLabelStyle.Render("   mem ") +
		sysSparklineStyle.Render(RenderSparkline(m.mem.Slice())) +
		metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", m.mem.Last())) +
		metricLabelStyle.Render("   heap ") +
		metricValueStyle.Render(format.Bytes(m.heapAlloc)) +
		metricLabelStyle.Render("   goroutines ") +
		metricValueStyle.Render(fmt.Sprintf("%d", m.goroutines))
	return panelStyle.Width(m.width - 2).Render(line)
}

func (m Model) viewFooter() string {
	return footerKeyStyle.Render(" q") + footerDescStyle.Render(" quit  ") +
		footerKeyStyle.Render("p") + footerDescStyle.Render(" pause  ") +
		footerKeyStyle.Render("r") + footerDescStyle.Render(" restart")
}

// renderResultLine formats one finished workload for the results panel.
func renderResultLine(res bench.Result, nameWidth int) string {
	name := workloadStyle.Render(fmt.Sprintf("%-*s", nameWidth, res.Name))
	if res.Err != nil {
		return name + " " + errorStyle.Render(fmt.Sprintf("failed: %v", res.Err))
	}
	s := res.Summary
	return name + " " + successStyle.Render(fmt.Sprintf(
		"%d samples  mean %s  p50 %s  p95 %s  max %s",
		s.Count,
		format.Pretty(int64(s.Mean)),
		format.Pretty(s.P50),
		format.Pretty(s.P95),
		format.Pretty(s.Max)))
}

// renderBar generates a textual progress bar of the given width.
func renderBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, workloads []bench.Workload, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, workloads, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the bridge can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd returns a tea.Cmd that launches the benchmark run.
func startRunCmd(ref *programRef, ctx context.Context, workloads []bench.Workload, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		progressChan := make(chan bench.ProgressUpdate, len(workloads)*bench.ProgressBufferMultiplier)

		var wg sync.WaitGroup
		wg.Add(1)
		go ForwardProgress(&wg, progressChan, len(workloads), ref)

		// Discard runner logs: zerolog output would corrupt the alt screen.
		runner := bench.NewRunner(cfg, logging.NewLogger(io.Discard, "tui"))
		results := runner.Execute(ctx, workloads, progressChan)
		wg.Wait()

		exitCode := apperrors.ExitSuccess
		for _, res := range results {
			if res.Err != nil {
				exitCode = apperrors.ExitCodeFor(res.Err)
				break
			}
		}
		return RunCompleteMsg{Results: results, ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			NumGC:        ms.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
