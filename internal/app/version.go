package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version. Overridden at build time via
// -ldflags "-X github.com/mlebl/timekit/internal/app.Version=...".
var Version = "0.3.0"

// HasVersionFlag reports whether the arguments request the version banner.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "timebench %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
