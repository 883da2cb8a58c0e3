package handlers

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ibro45/diffpaint/internal/highlight"
	"github.com/ibro45/diffpaint/internal/linenumbers"
	"github.com/ibro45/diffpaint/internal/paint"
)

var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(?: (.*))?$`)

// HunkHeader is a parsed "@@ -old,count +new,count @@ fragment" line.
type HunkHeader struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Fragment           string
}

// ParseHunkHeader parses line as a unified-diff hunk header. Omitted
// counts default to 1, matching unified diff's convention.
func ParseHunkHeader(line string) (HunkHeader, bool) {
	m := hunkHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return HunkHeader{}, false
	}
	h := HunkHeader{Fragment: m[5]}
	h.OldStart, _ = strconv.Atoi(m[1])
	h.OldCount = 1
	if m[2] != "" {
		h.OldCount, _ = strconv.Atoi(m[2])
	}
	h.NewStart, _ = strconv.Atoi(m[3])
	h.NewCount = 1
	if m[4] != "" {
		h.NewCount, _ = strconv.Atoi(m[4])
	}
	return h, true
}

// MaxLineNumberWidth returns the decimal digit width of the largest line
// number that will appear in this hunk's gutter, across both sides.
func (h HunkHeader) MaxLineNumberWidth() int {
	oldMax := h.OldStart + h.OldCount - 1
	newMax := h.NewStart + h.NewCount - 1
	m := oldMax
	if newMax > m {
		m = newMax
	}
	if m < 1 {
		m = 1
	}
	return len(strconv.Itoa(m))
}

// HandleHunkHeader resets the line-number counters for the new hunk and
// writes the rendered header line: the "@@ ... @@" portion in the
// HunkHeader style, followed by any trailing source fragment in the
// HunkHeaderCode style (syntax-highlighted when a language is known).
func (h *Handlers) HandleHunkHeader(line string) error {
	hdr, ok := ParseHunkHeader(line)
	if !ok {
		return h.HandlePassThrough(line)
	}
	h.counters = linenumbers.NewCounters(hdr.OldStart, hdr.NewStart)
	h.hunkMaxWidth = hdr.MaxLineNumberWidth()

	marker := line
	fragment := ""
	if hdr.Fragment != "" {
		marker = line[:len(line)-len(hdr.Fragment)-1]
		fragment = hdr.Fragment
	}

	var spans []highlight.Span
	if fragment != "" && h.cfg.Highlighter != nil && h.cfg.Language != "" {
		spans = h.cfg.Highlighter.Highlight(h.cfg.Language, fragment)
	}

	out := paint.PaintPlain(marker, h.cfg.Styles.HunkHeader, nil)
	if fragment != "" {
		out += " " + paint.PaintPlain(fragment, h.cfg.Styles.HunkHeaderCode, spans)
	}
	_, err := fmt.Fprintln(h.w, out)
	return err
}
