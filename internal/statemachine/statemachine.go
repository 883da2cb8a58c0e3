// Package statemachine classifies one diff stream's lines, one at a
// time, and dispatches each to the handler its current state and the
// line's own prefix call for. It carries the state forward across
// Feed calls: a hunk body's minus/plus lines are buffered until a
// context line, a new hunk header, or end of stream flushes them.
package statemachine

import (
	"strings"

	"github.com/ibro45/diffpaint/internal/ansiscan"
	"github.com/ibro45/diffpaint/internal/handlers"
)

// State is the diff element the machine currently believes it is
// inside.
type State int

const (
	StateUnknown State = iota
	StateCommitMeta
	StateFileMeta
	StateHunkBody
	StateBlame
)

// fileMetaPrefixes are the line prefixes that continue (or begin) a
// file-meta block once a "diff --git"/"diff --cc"/"diff --combined"
// line has introduced it.
var fileMetaPrefixes = []string{
	"diff --git", "diff --cc", "diff --combined",
	"--- ", "+++ ", "index ",
	"old mode ", "new mode ",
	"similarity index ", "rename from", "rename to",
	"copy from", "copy to",
	"Binary files ", "Submodule ",
}

var fileMetaIntroducers = []string{"diff --git", "diff --cc", "diff --combined"}

// Machine drives one diff stream's classification and dispatch.
type Machine struct {
	h     *handlers.Handlers
	state State

	minusLines []handlers.BufferedLine
	plusLines  []handlers.BufferedLine
}

// New builds a Machine that dispatches to h.
func New(h *handlers.Handlers) *Machine {
	return &Machine{h: h, state: StateUnknown}
}

// Feed classifies and renders one line of input (without its trailing
// newline).
func (m *Machine) Feed(line string) error {
	plain := ansiscan.Strip(line)

	if handled, err := m.tryBlame(plain, line); handled || err != nil {
		return err
	}

	switch {
	case isCommitMetaLine(plain):
		if err := m.flushHunkBody(); err != nil {
			return err
		}
		m.state = StateCommitMeta
		return m.h.HandleCommitMeta(line)

	case hasAnyPrefix(plain, fileMetaIntroducers):
		if err := m.flushHunkBody(); err != nil {
			return err
		}
		m.state = StateFileMeta
		return m.h.HandleFileMeta(line)

	case m.state == StateFileMeta && hasAnyPrefix(plain, fileMetaPrefixes):
		return m.h.HandleFileMeta(line)

	case strings.HasPrefix(plain, "@@ "):
		if err := m.flushHunkBody(); err != nil {
			return err
		}
		m.state = StateHunkBody
		return m.h.HandleHunkHeader(line)

	case m.state == StateHunkBody && strings.HasPrefix(plain, "\\"):
		return m.h.HandlePassThrough(line)

	case m.state == StateHunkBody && strings.HasPrefix(plain, "-"):
		m.minusLines = append(m.minusLines, handlers.BufferedLine{Plain: plain[1:], Raw: ansiscan.DropFirstRune(line)})
		return nil

	case m.state == StateHunkBody && strings.HasPrefix(plain, "+"):
		m.plusLines = append(m.plusLines, handlers.BufferedLine{Plain: plain[1:], Raw: ansiscan.DropFirstRune(line)})
		return nil

	case m.state == StateHunkBody && (plain == "" || strings.HasPrefix(plain, " ")):
		if err := m.flushHunkBody(); err != nil {
			return err
		}
		code := plain
		if len(code) > 0 {
			code = code[1:]
		}
		return m.h.HandleContext(code)

	default:
		return m.h.HandlePassThrough(line)
	}
}

// Close flushes any buffered hunk-body lines at end of stream.
func (m *Machine) Close() error {
	return m.flushHunkBody()
}

func (m *Machine) flushHunkBody() error {
	if len(m.minusLines) == 0 && len(m.plusLines) == 0 {
		return nil
	}
	minus, plus := m.minusLines, m.plusLines
	m.minusLines = nil
	m.plusLines = nil
	return m.h.FlushHunkBody(minus, plus)
}

// tryBlame lets the blame handler attempt to parse line, but only when
// the machine is in a state where blame output can legitimately
// appear: either it hasn't classified anything yet, or it is already
// mid-blame-stream.
func (m *Machine) tryBlame(plain, raw string) (bool, error) {
	if m.state != StateUnknown && m.state != StateBlame {
		return false, nil
	}
	handled, err := m.h.HandleBlameLine(raw)
	if handled {
		m.state = StateBlame
	}
	return handled, err
}

func isCommitMetaLine(plain string) bool {
	if strings.HasPrefix(plain, "commit ") {
		return true
	}
	return isHexCommitHash(plain)
}

// isHexCommitHash reports whether plain is a bare hex string of plausible
// commit-hash length, as `git show`/`git log --oneline` sometimes emits
// with no "commit " prefix (e.g. under certain format strings).
func isHexCommitHash(plain string) bool {
	if len(plain) < 7 || len(plain) > 40 {
		return false
	}
	for _, r := range plain {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
