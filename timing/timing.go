// Package timing measures the elapsed execution time of synchronous and
// asynchronous units of work and hands the measurement to a caller-supplied
// reporter, either as a raw nanosecond count or as a human-readable string.
//
// The package wraps a computation rather than instrumenting it: the wrapped
// body's results and failures reach the caller exactly as they would without
// the wrapper. Reporting is a pure side observation.
package timing

import (
	"fmt"

	"github.com/mlebl/timekit/clock"
	"github.com/mlebl/timekit/format"
)

// Reporter receives an elapsed duration in nanoseconds. It is invoked at most
// once per timed operation. Typical implementations forward to a logger or a
// metrics sink; see the report package for ready-made adapters.
type Reporter func(ns int64)

// StringReporter receives an elapsed duration already rendered as a
// human-readable string.
type StringReporter func(s string)

// active is the process-wide monotonic clock used by all timing operations.
var active clock.Clock = clock.System{}

// SetClock replaces the process-wide clock and returns a function that
// restores the previous one. It exists so tests can substitute a
// deterministic clock; it must not be called concurrently with timing
// operations.
func SetClock(c clock.Clock) (restore func()) {
	prev := active
	active = c
	return func() { active = prev }
}

// Time runs body and reports the elapsed nanoseconds.
//
// The clock is read once before and once after body. On success the reporter
// is invoked exactly once, after body has finished, and body's value is
// returned unchanged. When body returns a non-nil error the reporter is not
// invoked and the error is returned directly; a panic in body likewise
// propagates without a report.
func Time[T any](report Reporter, body func() (T, error)) (T, error) {
	start := active.Nanos()
	v, err := body()
	if err != nil {
		return v, err
	}
	report(active.Nanos() - start)
	return v, nil
}

// TimePretty is Time with the elapsed duration rendered through format.Pretty
// before being handed to the reporter.
func TimePretty[T any](report StringReporter, body func() (T, error)) (T, error) {
	return Time(func(ns int64) { report(format.Pretty(ns)) }, body)
}

// TimePrettyFormat is TimePretty with the rendered duration substituted into
// template at its %s placeholder. Templates with missing or surplus
// placeholders follow fmt's semantics and produce %! error markers in the
// reported string.
func TimePrettyFormat[T any](template string, report StringReporter, body func() (T, error)) (T, error) {
	return Time(func(ns int64) { report(fmt.Sprintf(template, format.Pretty(ns))) }, body)
}
