package handlers

import (
	"fmt"

	"github.com/ibro45/diffpaint/internal/editinfer"
	"github.com/ibro45/diffpaint/internal/highlight"
	"github.com/ibro45/diffpaint/internal/linenumbers"
	"github.com/ibro45/diffpaint/internal/paint"
	"github.com/ibro45/diffpaint/internal/sidebyside"
	"github.com/ibro45/diffpaint/internal/style"
)

// eraseToBOL is the CSI "erase in line" sequence, parameter 1: clear from
// the start of the line up to (and including) the cursor.
const eraseToBOL = "\x1b[1K"

// HandleCommitMeta writes a "commit ..." header line (and the author/date
// lines that follow it in `git log`/`git show` output) in the CommitMeta
// style, with no syntax highlighting or line numbers.
func (h *Handlers) HandleCommitMeta(line string) error {
	_, err := fmt.Fprintln(h.w, paint.PaintPlain(line, h.cfg.Styles.CommitMeta, nil))
	return err
}

// HandleFileMeta writes one of the "diff --git", "index", "---", "+++"
// (etc.) lines that precede a hunk, in the FileMeta style.
func (h *Handlers) HandleFileMeta(line string) error {
	_, err := fmt.Fprintln(h.w, paint.PaintPlain(line, h.cfg.Styles.FileMeta, nil))
	return err
}

// HandlePassThrough writes line unmodified, for input the state machine
// could not otherwise classify.
func (h *Handlers) HandlePassThrough(line string) error {
	_, err := fmt.Fprintln(h.w, line)
	return err
}

// HandleContext renders one unchanged (" "-prefixed) hunk-body line: a
// line-number gutter on both sides, followed by the syntax-highlighted
// code with no edit emphasis. In side-by-side mode the same painted
// content is duplicated into both columns and reflowed together.
func (h *Handlers) HandleContext(code string) error {
	gutter := h.renderGutter(true, true)
	h.counters.AdvanceMinus()
	h.counters.AdvancePlus()

	spans := h.highlightLine(code)
	out := gutter + " " + paint.PaintPlain(code, h.cfg.Styles.Context, spans)

	if h.cfg.SideBySide {
		return h.writeRows(sidebyside.Layout([]string{out}, []string{out}, h.sideBySideOptions()))
	}
	_, err := fmt.Fprintln(h.w, out)
	return err
}

// FlushHunkBody renders a run of buffered minus and plus lines. In
// color-only mode (see Config.ColorOnly) each line is recolored in place
// and edit inference never runs; otherwise minus/plus lines are paired
// up via intra-line edit inference first. In side-by-side mode, minus
// and plus cells are reflowed into a shared two-column grid instead of
// being written as two sequential blocks.
func (h *Handlers) FlushHunkBody(minusLines, plusLines []BufferedLine) error {
	if h.cfg.ColorOnly {
		return h.flushColorOnly(minusLines, plusLines)
	}

	annotatedMinus, annotatedPlus := editinfer.InferEdits(plainOf(minusLines), plainOf(plusLines), h.cfg.DistanceThreshold, h.cfg.MaxLineLength)

	if h.cfg.SideBySide {
		left := make([]string, len(annotatedMinus))
		for i, line := range annotatedMinus {
			left[i] = h.renderSide(line, true)
		}
		right := make([]string, len(annotatedPlus))
		for i, line := range annotatedPlus {
			right[i] = h.renderSide(line, false)
		}
		return h.writeRows(sidebyside.Layout(left, right, h.sideBySideOptions()))
	}

	for _, line := range annotatedMinus {
		if _, err := fmt.Fprintln(h.w, h.renderSide(line, true)); err != nil {
			return err
		}
	}
	for _, line := range annotatedPlus {
		if _, err := fmt.Fprintln(h.w, h.renderSide(line, false)); err != nil {
			return err
		}
	}
	return nil
}

// renderSide renders one annotated minus or plus line: gutter (with the
// absent side's column left blank), the "-"/"+"/space marker, base/
// emphasis style, and syntax highlighting. It only composes the line;
// callers decide how to write it.
func (h *Handlers) renderSide(line editinfer.AnnotatedLine, isMinus bool) string {
	gutter := h.renderGutter(isMinus, !isMinus)
	if isMinus {
		h.counters.AdvanceMinus()
	} else {
		h.counters.AdvancePlus()
	}

	base, emph, emptyMarker := h.sideStyles(isMinus)
	code := concatAnnotated(line)

	if code == "" {
		if out, ok := h.emptyLineOutput(gutter, isMinus, base, emptyMarker); ok {
			return out
		}
	}

	spans := h.highlightLine(code)
	return gutter + h.marker(isMinus) + paint.PaintLine(line, paint.LineStyles{
		Base:                        base,
		Emph:                        emph,
		WhitespaceError:             h.cfg.Styles.WhitespaceError,
		HighlightTrailingWhitespace: true,
	}, spans)
}

// flushColorOnly is FlushHunkBody's color-only-mode path: every buffered
// line is recolored in place from its Raw (marker-stripped but otherwise
// untouched) form, with no pairing or edit inference.
func (h *Handlers) flushColorOnly(minusLines, plusLines []BufferedLine) error {
	if h.cfg.SideBySide {
		left := make([]string, len(minusLines))
		for i, line := range minusLines {
			left[i] = h.renderColorOnlySide(line, true)
		}
		right := make([]string, len(plusLines))
		for i, line := range plusLines {
			right[i] = h.renderColorOnlySide(line, false)
		}
		return h.writeRows(sidebyside.Layout(left, right, h.sideBySideOptions()))
	}

	for _, line := range minusLines {
		if _, err := fmt.Fprintln(h.w, h.renderColorOnlySide(line, true)); err != nil {
			return err
		}
	}
	for _, line := range plusLines {
		if _, err := fmt.Fprintln(h.w, h.renderColorOnlySide(line, false)); err != nil {
			return err
		}
	}
	return nil
}

// renderColorOnlySide renders one buffered minus or plus line under
// color-only mode: its original escape-coded form is preserved, with
// only a background overlay (from minus-style/plus-style) and, where the
// relevant state's style is syntax-highlighted, a foreground overlay
// from the syntax highlighter.
func (h *Handlers) renderColorOnlySide(line BufferedLine, isMinus bool) string {
	gutter := h.renderGutter(isMinus, !isMinus)
	if isMinus {
		h.counters.AdvanceMinus()
	} else {
		h.counters.AdvancePlus()
	}

	base, _, emptyMarker := h.sideStyles(isMinus)
	if line.Plain == "" {
		if out, ok := h.emptyLineOutput(gutter, isMinus, base, emptyMarker); ok {
			return out
		}
	}

	spans := h.highlightLine(line.Plain)
	return gutter + h.marker(isMinus) + paint.PaintColorOnly(line.Raw, base, spans)
}

// sideStyles resolves the base, edit-emphasis, and empty-line-marker
// styles for whichever of minus/plus isMinus selects.
func (h *Handlers) sideStyles(isMinus bool) (base, emph, emptyMarker style.Style) {
	if isMinus {
		return h.cfg.Styles.Minus, h.cfg.Styles.MinusEmph, h.cfg.Styles.MinusEmptyMarker
	}
	return h.cfg.Styles.Plus, h.cfg.Styles.PlusEmph, h.cfg.Styles.PlusEmptyMarker
}

// emptyLineOutput builds the empty-line-marker rendering for a fully
// empty minus/plus line, when base has no configured background to make
// an ordinary blank line visible: the marker style's own background is
// painted across the line via CSI erase-to-BOL instead.
func (h *Handlers) emptyLineOutput(gutter string, isMinus bool, base, emptyMarker style.Style) (string, bool) {
	if base.Background.Kind != style.ColorNone {
		return "", false
	}
	return gutter + h.marker(isMinus) + emptyMarker.Render() + eraseToBOL + style.Reset(), true
}

// marker returns the leading "-"/"+" this side's rendered line should
// carry, or a single space when Config.KeepPlusMinusMarkers is false.
func (h *Handlers) marker(isMinus bool) string {
	if !h.cfg.KeepPlusMinusMarkers {
		return " "
	}
	if isMinus {
		return "-"
	}
	return "+"
}

// plainOf projects a buffered-line slice down to its Plain fields, the
// form edit inference operates on.
func plainOf(lines []BufferedLine) []string {
	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = l.Plain
	}
	return plain
}

// sideBySideOptions builds the sidebyside.Options this handler's
// configured column width, wrap cap, and wrap-symbol style translate to.
func (h *Handlers) sideBySideOptions() sidebyside.Options {
	return sidebyside.Options{
		ColumnWidth:  h.cfg.ColumnWidth,
		WrapMaxLines: h.cfg.WrapMaxLines,
		WrapStyle:    h.cfg.Styles.WrapSymbol,
	}
}

// writeRows writes each already-laid-out physical row on its own line.
func (h *Handlers) writeRows(rows []string) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(h.w, row); err != nil {
			return err
		}
	}
	return nil
}

// renderGutter writes the line-number columns, when enabled, blanking
// out whichever side is absent on this line.
func (h *Handlers) renderGutter(hasMinus, hasPlus bool) string {
	if !h.cfg.ShowLineNumbers {
		return ""
	}
	return linenumbers.Render(h.cfg.LineNumberFormat, h.counters, hasMinus, hasPlus, h.hunkMaxWidth)
}

// highlightLine runs the configured highlighter over code, when one and
// a language are configured.
func (h *Handlers) highlightLine(code string) []highlight.Span {
	if h.cfg.Highlighter == nil || h.cfg.Language == "" {
		return nil
	}
	return h.cfg.Highlighter.Highlight(h.cfg.Language, code)
}

// concatAnnotated reconstructs the full line text an AnnotatedLine's
// spans were cut from, for feeding to the syntax highlighter (which
// operates on whole-line text, not on edit-inference spans).
func concatAnnotated(line editinfer.AnnotatedLine) string {
	var s string
	for _, a := range line {
		s += a.Text
	}
	return s
}
