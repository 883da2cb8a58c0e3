package paint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ibro45/diffpaint/internal/editinfer"
	"github.com/ibro45/diffpaint/internal/highlight"
	"github.com/ibro45/diffpaint/internal/style"
)

func TestPaintLineAppliesBaseAndEmphasis(t *testing.T) {
	line := editinfer.AnnotatedLine{
		{Op: editinfer.MinusNoop, Text: "foo "},
		{Op: editinfer.Deletion, Text: "bar"},
	}
	base, _ := style.Parse("red")
	emph, _ := style.Parse("bold")
	out := PaintLine(line, LineStyles{Base: base, Emph: emph}, nil)

	assert.Contains(t, out, "foo ")
	assert.Contains(t, out, "bar")
	assert.True(t, strings.Count(out, style.Reset()) >= 2)
}

func TestPaintLineWhitespaceError(t *testing.T) {
	line := editinfer.AnnotatedLine{
		{Op: editinfer.MinusNoop, Text: "foo   "},
	}
	base, _ := style.Parse("normal")
	wsErr, _ := style.Parse("reverse")
	out := PaintLine(line, LineStyles{Base: base, WhitespaceError: wsErr, HighlightTrailingWhitespace: true}, nil)
	assert.Contains(t, out, "foo")
	assert.Contains(t, out, "\x1b[7m")
}

func TestPaintPlainNoHighlighter(t *testing.T) {
	base, _ := style.Parse("blue")
	out := PaintPlain("hello", base, nil)
	assert.Equal(t, base.Render()+"hello"+style.Reset(), out)
}

func TestPaintSubSpansResolvesSyntaxSentinel(t *testing.T) {
	base := style.Style{Foreground: style.Syntax, IsSyntaxHighlighted: true}
	spans := []highlight.Span{
		{Style: style.Style{Foreground: style.RGBColor(1, 2, 3)}, Start: 0, End: 5},
	}
	out := PaintPlain("hello", base, spans)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "38;2;1;2;3")
}

func TestPaintTextReinjectsAfterEmbeddedReset(t *testing.T) {
	s, _ := style.Parse("red")
	text := "a" + style.Reset() + "b"
	out := paintText(s, text)
	assert.Equal(t, 2, strings.Count(out, s.Render()))
}
