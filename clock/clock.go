// Package clock abstracts the monotonic time source used for elapsed-time
// measurement. Production code reads the Go runtime's monotonic clock through
// [System]; tests inject a [Fake] clock to obtain deterministic readings.
package clock

// Clock supplies monotonic nanosecond readings. Successive calls to Nanos
// within a process return non-decreasing values that are unaffected by
// wall-clock adjustments. Implementations must be safe for concurrent use.
type Clock interface {
	// Nanos returns the current monotonic reading in nanoseconds since an
	// unspecified start point. Only differences between readings carry meaning.
	Nanos() int64
}

// System reads the Go runtime's monotonic clock. The zero value is ready to
// use and safe to share between goroutines.
type System struct{}

// Verify that System implements Clock.
var _ Clock = System{}

// Nanos returns the runtime monotonic clock reading in nanoseconds.
func (System) Nanos() int64 {
	return nanotime()
}
