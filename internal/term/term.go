// Package term resolves the terminal capabilities a rendered diff needs
// to know about: whether the output stream is an interactive TTY,
// whether it supports 24-bit color, and how many columns wide it is.
package term

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Caps is the TerminalCaps collaborator consumed by the CLI layer to
// size the side-by-side layout and to report capabilities in the
// doctor command.
type Caps interface {
	SupportsTrueColor() bool
	IsATTY() bool
	WidthCells() int
}

// Detected implements Caps by inspecting an *os.File (typically
// os.Stdout) and the process environment.
type Detected struct {
	f *os.File
}

// New builds a Detected from f.
func New(f *os.File) Detected {
	return Detected{f: f}
}

// IsATTY reports whether f is connected to a terminal device.
func (d Detected) IsATTY() bool {
	if d.f == nil {
		return false
	}
	return term.IsTerminal(int(d.f.Fd()))
}

// WidthCells returns the terminal's column width, falling back to 80
// when it cannot be determined (not a TTY, or the ioctl failed).
func (d Detected) WidthCells() int {
	if !d.IsATTY() {
		return 80
	}
	w, _, err := term.GetSize(int(d.f.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// SupportsTrueColor reports whether the environment advertises 24-bit
// color support, via the de facto COLORTERM convention, with common
// terminal-emulator TERM values as a fallback signal.
func (d Detected) SupportsTrueColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return true
	}
	t := strings.ToLower(os.Getenv("TERM"))
	switch {
	case strings.Contains(t, "256color"):
		return false
	case strings.Contains(t, "xterm"), strings.Contains(t, "screen"), strings.Contains(t, "tmux"):
		return true
	default:
		return false
	}
}
