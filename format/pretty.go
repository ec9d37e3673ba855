// Package format renders elapsed durations and byte counts as human-readable
// strings for CLI output, logs, and reporters.
package format

import (
	"fmt"
	"time"
)

// Nanosecond multiples used by the tiered formatter.
const (
	nsPerMicrosecond = 1_000
	nsPerMillisecond = 1_000_000
	nsPerSecond      = 1_000_000_000

	msPerSecond = 1_000
	msPerMinute = 60_000
	msPerHour   = 3_600_000
	msPerDay    = 86_400_000
)

// Pretty converts a nanosecond count into a tiered, human-readable string.
//
// The unit scales with magnitude: "ns" below a microsecond, then "us", "ms"
// and "s", switching to an HH:MM:SS clock face (with a day prefix when
// needed) at one minute. Exact multiples of the next unit print as integers
// ("1 us"); everything else prints with a fixed three-digit fraction
// ("1.500 us"). All threshold checks use truncating integer division, and the
// branch order matters: the exact-multiple check of each tier must run before
// its fractional fallback.
//
// Pretty is deterministic and total for non-negative inputs. Negative inputs
// only arise under a broken clock; they do not panic but their rendering is
// not guaranteed to be meaningful.
func Pretty(ns int64) string {
	us := ns / nsPerMicrosecond
	ms := ns / nsPerMillisecond
	s := ns / nsPerSecond

	switch {
	case us == 0 && ms == 0 && s == 0:
		return fmt.Sprintf("%d ns", ns)
	case ms == 0 && s == 0 && ns == us*nsPerMicrosecond:
		return fmt.Sprintf("%d us", us)
	case ms == 0 && s == 0:
		return fmt.Sprintf("%.3f us", float64(ns)/float64(nsPerMicrosecond))
	case s == 0 && us == ms*1_000:
		return fmt.Sprintf("%d ms", ms)
	case s == 0:
		return fmt.Sprintf("%.3f ms", float64(us)/1_000.0)
	case s < 60 && ms == s*msPerSecond:
		return fmt.Sprintf("%d s", s)
	case s < 60:
		return fmt.Sprintf("%.3f s", float64(ms)/1_000.0)
	}
	return clockFace(ms)
}

// clockFace renders a millisecond count of one minute or more as HH:MM:SS,
// prefixed with the day count when it is non-zero.
func clockFace(ms int64) string {
	days := ms / msPerDay
	rem := ms % msPerDay
	hours := rem / msPerHour
	rem %= msPerHour
	minutes := rem / msPerMinute
	seconds := (rem % msPerMinute) / msPerSecond

	if days == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d days %02d:%02d:%02d", days, hours, minutes, seconds)
}

// PrettyDuration is a convenience wrapper around Pretty for time.Duration
// values.
func PrettyDuration(d time.Duration) string {
	return Pretty(d.Nanoseconds())
}
