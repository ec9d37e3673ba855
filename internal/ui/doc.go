// Package ui provides terminal color themes shared by the CLI and TUI
// presentation layers. Colors honor the NO_COLOR convention and the
// --no-color flag.
package ui
