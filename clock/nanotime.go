package clock

import (
	_ "unsafe" // required for go:linkname
)

// nanotime reads the runtime's monotonic clock directly, avoiding the
// time.Time allocation and wall-clock component of time.Now.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64
