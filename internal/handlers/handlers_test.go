package handlers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibro45/diffpaint/internal/ansiscan"
	"github.com/ibro45/diffpaint/internal/linenumbers"
	"github.com/ibro45/diffpaint/internal/style"
)

func newTestHandlers() (*Handlers, *bytes.Buffer) {
	var buf bytes.Buffer
	minus, _ := style.Parse("red")
	plus, _ := style.Parse("green")
	cfg := &Config{
		ShowLineNumbers:   true,
		LineNumberFormat:  linenumbers.ParseFormat("{nm:>4}│{np:>4}│", false),
		DistanceThreshold: 0.6,
		Styles: Styles{
			Minus:   minus,
			Plus:    plus,
			Context: style.Style{},
		},
	}
	h := New(cfg, &buf)
	h.counters = linenumbers.NewCounters(1, 1)
	return h, &buf
}

func TestHandleCommitMeta(t *testing.T) {
	h, buf := newTestHandlers()
	require.NoError(t, h.HandleCommitMeta("commit abcdef"))
	assert.Contains(t, buf.String(), "commit abcdef")
}

func TestHandleFileMeta(t *testing.T) {
	h, buf := newTestHandlers()
	require.NoError(t, h.HandleFileMeta("--- a/file.go"))
	assert.Contains(t, buf.String(), "--- a/file.go")
}

func TestHandlePassThrough(t *testing.T) {
	h, buf := newTestHandlers()
	require.NoError(t, h.HandlePassThrough("\\ No newline at end of file"))
	assert.Equal(t, "\\ No newline at end of file\n", buf.String())
}

func TestHandleContextAdvancesBothCounters(t *testing.T) {
	h, buf := newTestHandlers()
	require.NoError(t, h.HandleContext("unchanged line"))
	assert.Contains(t, buf.String(), "unchanged line")
	assert.Equal(t, 2, h.counters.Minus)
	assert.Equal(t, 2, h.counters.Plus)
}

func buffered(lines ...string) []BufferedLine {
	out := make([]BufferedLine, len(lines))
	for i, l := range lines {
		out[i] = BufferedLine{Plain: l, Raw: l}
	}
	return out
}

func TestFlushHunkBodyPairsHomologousLines(t *testing.T) {
	h, buf := newTestHandlers()
	err := h.FlushHunkBody(buffered("foo bar"), buffered("foo baz"))
	require.NoError(t, err)
	out := buf.String()
	text := ansiscan.Strip(out)
	assert.Contains(t, text, "foo ")
	assert.Contains(t, text, "bar")
	assert.Contains(t, text, "baz")
	// One minus line, one plus line.
	assert.Equal(t, 2, countLines(out))
	assert.Equal(t, 2, h.counters.Minus)
	assert.Equal(t, 2, h.counters.Plus)
}

func TestFlushHunkBodyUnpairedLinesEmitSeparately(t *testing.T) {
	h, buf := newTestHandlers()
	err := h.FlushHunkBody(buffered("completely different old"), buffered("totally unrelated new"))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "completely different old")
	assert.Contains(t, out, "totally unrelated new")
}

func TestFlushHunkBodySideBySideProducesOneRowPerPair(t *testing.T) {
	h, buf := newTestHandlers()
	h.cfg.SideBySide = true
	h.cfg.ColumnWidth = 40
	h.cfg.WrapMaxLines = 3

	err := h.FlushHunkBody(buffered("foo bar"), buffered("foo baz"))
	require.NoError(t, err)
	out := buf.String()
	assert.Equal(t, 1, countLines(out))
	assert.Contains(t, ansiscan.Strip(out), "bar")
	assert.Contains(t, ansiscan.Strip(out), "baz")
}

func TestFlushHunkBodyKeepsPlusMinusMarkersWhenConfigured(t *testing.T) {
	h, buf := newTestHandlers()
	h.cfg.ShowLineNumbers = false
	h.cfg.KeepPlusMinusMarkers = true

	err := h.FlushHunkBody(buffered("old line"), buffered("new line"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "-"))
	assert.True(t, strings.HasPrefix(lines[1], "+"))
}

func TestFlushHunkBodyCollapsesMarkersByDefault(t *testing.T) {
	h, buf := newTestHandlers()
	h.cfg.ShowLineNumbers = false

	err := h.FlushHunkBody(buffered("old line"), buffered("new line"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.False(t, strings.HasPrefix(lines[0], "-"))
	assert.False(t, strings.HasPrefix(lines[1], "+"))
}

func TestFlushHunkBodyColorOnlySkipsEditInferenceAndPreservesLineCount(t *testing.T) {
	h, buf := newTestHandlers()
	h.cfg.ColorOnly = true

	minus := []BufferedLine{{Plain: "foo bar", Raw: "\x1b[35mfoo bar\x1b[0m"}}
	plus := []BufferedLine{{Plain: "foo baz", Raw: "foo baz"}}
	err := h.FlushHunkBody(minus, plus)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, countLines(out))
	assert.Contains(t, out, "foo bar")
	assert.Contains(t, out, "foo baz")
}

func TestRenderSideEmitsEmptyLineMarkerForEmptyAddedLine(t *testing.T) {
	h, buf := newTestHandlers()
	h.cfg.Styles.PlusEmptyMarker, _ = style.Parse("reverse green")
	// Plus has no configured background, so the empty line must use the
	// erase-to-BOL marker sequence rather than an invisible blank line.

	err := h.FlushHunkBody(nil, buffered(""))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "\x1b[1K")
}

func TestHandleContextSideBySideDuplicatesBothColumns(t *testing.T) {
	h, buf := newTestHandlers()
	h.cfg.SideBySide = true
	h.cfg.ColumnWidth = 40
	h.cfg.WrapMaxLines = 3

	require.NoError(t, h.HandleContext("shared line"))
	out := buf.String()
	assert.Equal(t, 1, countLines(out))
	assert.Equal(t, 2, strings.Count(out, "shared line"))
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
