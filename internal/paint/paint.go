// Package paint composites the layers that make up one rendered diff
// line: a base state style (context/minus/plus), an edit-emphasis
// override for the spans internal/editinfer marked as a deletion or
// insertion, a syntax-highlighter foreground overlay for any style that
// resolves to the "syntax" sentinel color, and finally a whitespace-error
// highlight for trailing whitespace.
package paint

import (
	"strings"

	"github.com/ibro45/diffpaint/internal/ansiscan"
	"github.com/ibro45/diffpaint/internal/editinfer"
	"github.com/ibro45/diffpaint/internal/highlight"
	"github.com/ibro45/diffpaint/internal/style"
)

// segment is one contiguous run of a line's text destined for one
// resolved Style, before the highlighter overlay and whitespace-error
// steps subdivide it further.
type segment struct {
	text          string
	emphasized    bool
	whitespaceErr bool
}

// segmentsFromAnnotations converts an edit-inference annotation line
// into paint segments, marking Deletion/Insertion spans as emphasized.
func segmentsFromAnnotations(line editinfer.AnnotatedLine) []segment {
	segs := make([]segment, len(line))
	for i, a := range line {
		segs[i] = segment{
			text:       a.Text,
			emphasized: a.Op == editinfer.Deletion || a.Op == editinfer.Insertion,
		}
	}
	return segs
}

// splitTrailingWhitespace carves the trailing run of spaces/tabs off the
// last segment into its own whitespace-error segment, when one exists.
func splitTrailingWhitespace(segs []segment) []segment {
	if len(segs) == 0 {
		return segs
	}
	last := segs[len(segs)-1]
	trimmed := strings.TrimRight(last.text, " \t")
	if len(trimmed) == len(last.text) {
		return segs
	}
	ws := last.text[len(trimmed):]
	out := make([]segment, len(segs)-1, len(segs)+1)
	copy(out, segs[:len(segs)-1])
	if trimmed != "" {
		out = append(out, segment{text: trimmed, emphasized: last.emphasized})
	}
	out = append(out, segment{text: ws, emphasized: last.emphasized, whitespaceErr: true})
	return out
}

// LineStyles bundles the resolved styles a single line's composite needs:
// the line's base (state) style, the emphasis override applied to edited
// spans, and the whitespace-error style applied to trailing blank runs.
type LineStyles struct {
	Base                        style.Style
	Emph                        style.Style
	WhitespaceError             style.Style
	HighlightTrailingWhitespace bool
}

// PaintLine composites one line's final rendered form. highlighterSpans
// must cover the same text that annotations' Text fields concatenate to
// (i.e. the full line, byte-indexed from 0); pass nil when no
// highlighter is active for this line.
func PaintLine(annotations editinfer.AnnotatedLine, styles LineStyles, highlighterSpans []highlight.Span) string {
	segs := segmentsFromAnnotations(annotations)
	if styles.HighlightTrailingWhitespace {
		segs = splitTrailingWhitespace(segs)
	}

	var b strings.Builder
	offset := 0
	for _, seg := range segs {
		start := offset
		end := offset + len(seg.text)
		offset = end

		if seg.whitespaceErr {
			b.WriteString(paintText(styles.WhitespaceError, seg.text))
			continue
		}

		base := styles.Base
		if seg.emphasized {
			base = styles.Emph.Over(styles.Base)
		}
		b.WriteString(paintSubSpans(base, seg.text, start, end, highlighterSpans))
	}
	return b.String()
}

// PaintPlain renders a line with no edit-inference annotations at all
// (context lines, or pass-through content), subject only to the base
// style and the highlighter overlay.
func PaintPlain(content string, base style.Style, highlighterSpans []highlight.Span) string {
	return paintSubSpans(base, content, 0, len(content), highlighterSpans)
}

// PaintColorOnly recolors raw — a minus/plus line that may already carry
// its own ANSI escape sequences — without running edit inference: every
// span raw's existing styling already breaks it into gets base's
// background composited on top (when base sets one), and, only when base
// is syntax-highlighted, a foreground overlay from highlighterSpans for
// whichever portion of the line each one covers. highlighterSpans must
// be indexed against raw with its ANSI stripped (i.e. against the Plain
// form), not against raw itself.
func PaintColorOnly(raw string, base style.Style, highlighterSpans []highlight.Span) string {
	var b strings.Builder
	offset := 0
	for _, span := range ansiscan.Scan(raw) {
		resolved := span.Style
		if base.Background.Kind != style.ColorNone {
			resolved.Background = base.Background
		}
		if base.IsSyntaxHighlighted || base.Foreground.Kind == style.ColorSyntax {
			resolved.IsSyntaxHighlighted = true
		}
		end := offset + len(span.Text)
		b.WriteString(paintSubSpans(resolved, span.Text, offset, end, highlighterSpans))
		offset = end
	}
	return b.String()
}

// paintSubSpans further subdivides [start,end) of content by the
// highlighter span boundaries that overlap it, resolving the "syntax"
// sentinel foreground against each overlapping span in turn.
func paintSubSpans(base style.Style, text string, start, end int, highlighterSpans []highlight.Span) string {
	needsSyntax := base.IsSyntaxHighlighted || base.Foreground.Kind == style.ColorSyntax
	if !needsSyntax || len(highlighterSpans) == 0 {
		return paintText(base, text)
	}

	var b strings.Builder
	pos := start
	textOffset := 0 // offset of `text[0]` within the conceptual [start,end) range; text is already just that slice
	for pos < end {
		span, found := spanCovering(highlighterSpans, pos)
		var chunkEnd int
		var resolved style.Style
		if found {
			chunkEnd = span.End
			if chunkEnd > end {
				chunkEnd = end
			}
			resolved = base.ResolveSyntax(span.Style.Foreground)
		} else {
			chunkEnd = nextSpanStart(highlighterSpans, pos, end)
			resolved = base
		}
		lo := pos - start + textOffset
		hi := chunkEnd - start + textOffset
		b.WriteString(paintText(resolved, text[lo:hi]))
		pos = chunkEnd
	}
	return b.String()
}

func spanCovering(spans []highlight.Span, pos int) (highlight.Span, bool) {
	for _, s := range spans {
		if pos >= s.Start && pos < s.End {
			return s, true
		}
	}
	return highlight.Span{}, false
}

func nextSpanStart(spans []highlight.Span, pos, limit int) int {
	best := limit
	for _, s := range spans {
		if s.Start > pos && s.Start < best {
			best = s.Start
		}
	}
	return best
}

// paintText renders text in style s, reinjecting s's SGR code after
// every embedded reset sequence so the style survives any nested reset
// already present in text (e.g. a raw-passthrough span), then closes
// with a final reset.
func paintText(s style.Style, text string) string {
	if s.IsOmitted {
		return ""
	}
	code := s.Render()
	if code == "" {
		return text
	}
	reset := style.Reset()
	replaced := strings.ReplaceAll(text, reset, reset+code)
	return code + replaced + reset
}
