// Package handlers implements the per-diff-element render logic the
// state machine dispatches to: commit metadata, file metadata, hunk
// headers, hunk bodies (paired minus/plus lines), git-blame lines, and
// plain pass-through.
package handlers

import (
	"io"

	"github.com/ibro45/diffpaint/internal/format"
	"github.com/ibro45/diffpaint/internal/highlight"
	"github.com/ibro45/diffpaint/internal/linenumbers"
	"github.com/ibro45/diffpaint/internal/style"
)

// Styles bundles every style role a rendered diff draws on.
type Styles struct {
	CommitMeta       style.Style
	FileMeta         style.Style
	HunkHeader       style.Style
	HunkHeaderCode   style.Style // trailing source fragment after "@@ ... @@"
	Minus            style.Style
	MinusEmph        style.Style
	MinusEmptyMarker style.Style
	Plus             style.Style
	PlusEmph         style.Style
	PlusEmptyMarker  style.Style
	Context          style.Style
	WhitespaceError  style.Style
	LineNumber       style.Style
	Blame            style.Style
	WrapSymbol       style.Style
}

// Config is the fully-resolved set of options the handlers need; it is
// produced by internal/config from CLI flags, config file, and defaults.
type Config struct {
	Styles Styles

	Highlighter highlight.Highlighter
	Language    string

	ShowLineNumbers  bool
	LineNumberFormat []format.Data

	DistanceThreshold           float64
	MaxLineLength               int
	HighlightTrailingWhitespace bool

	// ColorOnly skips edit inference entirely: each minus/plus line is
	// recolored in place, preserving whatever ANSI styling it already
	// carried, rather than diffed against its counterpart.
	ColorOnly bool
	// KeepPlusMinusMarkers controls whether the leading "-"/"+" is
	// re-emitted before a rendered minus/plus line, or collapsed to a
	// single space the way the gutter already represents the side.
	KeepPlusMinusMarkers bool

	BlamePalette         []string
	BlameFormat          []format.Data
	BlameTimestampFormat string

	SideBySide   bool
	ColumnWidth  int
	WrapMaxLines int
}

// BufferedLine is one minus or plus hunk-body line held by the state
// machine until its block flushes. Plain is marker-stripped and
// ANSI-stripped — what edit inference and syntax highlighting operate
// on. Raw is marker-stripped but otherwise untouched, kept so color-only
// mode can recolor a line without disturbing any escape sequences it
// already carried.
type BufferedLine struct {
	Plain string
	Raw   string
}

// Handlers holds the mutable render state (running line-number counters,
// current hunk's max line-number width, blame color assignments) that
// persists across the Feed calls of one diff stream.
type Handlers struct {
	cfg *Config
	w   io.Writer

	counters     linenumbers.Counters
	hunkMaxWidth int

	blameKeyColors   map[string]string
	previousBlameKey string
	blameHasPrevious bool
}

// New builds a Handlers writing rendered output to w.
func New(cfg *Config, w io.Writer) *Handlers {
	return &Handlers{
		cfg:            cfg,
		w:              w,
		blameKeyColors: make(map[string]string),
	}
}
