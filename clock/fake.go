package clock

import "sync"

// Fake is a deterministic Clock for tests. It replays a scripted sequence of
// readings and, once the script is exhausted, keeps returning the last value
// until Advance moves it forward.
type Fake struct {
	mu    sync.Mutex
	ticks []int64
	idx   int
	now   int64
}

// Verify that Fake implements Clock.
var _ Clock = (*Fake)(nil)

// NewFake creates a fake clock that returns the given readings in order.
// With no arguments the clock starts at zero and only moves via Advance.
func NewFake(ticks ...int64) *Fake {
	return &Fake{ticks: ticks}
}

// Nanos returns the next scripted reading, or the current position when the
// script is exhausted.
func (f *Fake) Nanos() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx < len(f.ticks) {
		f.now = f.ticks[f.idx]
		f.idx++
	}
	return f.now
}

// Advance moves the clock forward by ns nanoseconds. It affects readings made
// after the scripted sequence has been consumed.
func (f *Fake) Advance(ns int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now += ns
}
