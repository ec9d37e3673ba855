package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlebl/timekit/internal/bench"
	"github.com/mlebl/timekit/internal/config"
	apperrors "github.com/mlebl/timekit/internal/errors"
)

func testModel(t *testing.T) Model {
	t.Helper()
	workloads, err := bench.ParseWorkloads("sleep:1ms,spin:100us")
	if err != nil {
		t.Fatalf("ParseWorkloads: %v", err)
	}
	m := NewModel(context.Background(), workloads, config.NewDefaultConfig(), "test")
	t.Cleanup(m.cancel)
	return m
}

func TestModel_WindowSize(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	got := updated.(Model)
	if got.width != 100 || got.height != 30 {
		t.Errorf("size = %dx%d, want 100x30", got.width, got.height)
	}
}

func TestModel_ProgressMsg(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(ProgressMsg{WorkloadIndex: 1, Value: 0.5, Average: 0.25, LastSample: 1500})
	got := updated.(Model)

	if got.progress[1] != 0.5 {
		t.Errorf("progress[1] = %v, want 0.5", got.progress[1])
	}
	if got.average != 0.25 {
		t.Errorf("average = %v, want 0.25", got.average)
	}
	if got.lastSample != 1500 {
		t.Errorf("lastSample = %d, want 1500", got.lastSample)
	}
	if got.latency.Len() != 1 {
		t.Errorf("latency history should hold the sample")
	}
}

func TestModel_ProgressIgnoredWhilePaused(t *testing.T) {
	m := testModel(t)
	m.paused = true

	updated, _ := m.Update(ProgressMsg{WorkloadIndex: 0, Value: 0.9})
	got := updated.(Model)
	if got.progress[0] != 0 {
		t.Error("paused model should not record progress")
	}
}

func TestModel_RunComplete(t *testing.T) {
	m := testModel(t)

	results := []bench.Result{{Name: "sleep:1ms"}}
	updated, _ := m.Update(RunCompleteMsg{Results: results, ExitCode: apperrors.ExitSuccess, Generation: 0})
	got := updated.(Model)

	if !got.done {
		t.Error("model should be done after RunCompleteMsg")
	}
	if got.average != 1.0 {
		t.Errorf("average = %v, want 1.0 after completion", got.average)
	}
	if len(got.results) != 1 {
		t.Error("results should be stored")
	}
}

func TestModel_StaleRunCompleteIgnored(t *testing.T) {
	m := testModel(t)
	m.generation = 2

	updated, _ := m.Update(RunCompleteMsg{ExitCode: apperrors.ExitErrorGeneric, Generation: 1})
	got := updated.(Model)
	if got.done {
		t.Error("stale RunCompleteMsg should be ignored")
	}
	if got.exitCode != apperrors.ExitSuccess {
		t.Error("stale RunCompleteMsg should not change the exit code")
	}
}

func TestModel_SysStats(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(SysStatsMsg{CPUPercent: 42.0, MemPercent: 60.0})
	got := updated.(Model)
	if got.cpu.Last() != 42.0 {
		t.Errorf("cpu.Last() = %v, want 42.0", got.cpu.Last())
	}
	if got.mem.Last() != 60.0 {
		t.Errorf("mem.Last() = %v, want 60.0", got.mem.Last())
	}
}

func TestModel_View(t *testing.T) {
	m := testModel(t)

	if got := m.View(); got != "Initializing..." {
		t.Errorf("zero-size view = %q, want Initializing...", got)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := updated.(Model).View()
	for _, want := range []string{"timebench", "sleep:1ms", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_QuitKeyCancelsContext(t *testing.T) {
	m := testModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	select {
	case <-m.ctx.Done():
	default:
		t.Error("quit key should cancel the run context")
	}
}
