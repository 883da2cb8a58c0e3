package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/ibro45/diffpaint/internal/format"
	"github.com/ibro45/diffpaint/internal/gwidth"
	"github.com/ibro45/diffpaint/internal/highlight"
	"github.com/ibro45/diffpaint/internal/paint"
	"github.com/ibro45/diffpaint/internal/style"
)

// blameLineRegex matches one "git blame --line-porcelain"-less (plain)
// output line, e.g.:
//
//	ea82f2d0 (Dan Davison       2021-08-22 18:20:19 -0700 120) let x = 1;
//
// A leading "^" marks a boundary commit. Compacted from the verbose Rust
// (?x) pattern since Go's regexp has no extended mode.
var blameLineRegex = regexp.MustCompile(`^(\^?[0-9a-f]{4,40})(?: .+)? \(([^ ].*[^ ]) +([0-9]{4}-[0-9]{2}-[0-9]{2} [0-9]{2}:[0-9]{2}:[0-9]{2} [-+][0-9]{4}) +([0-9]+)\)(.*)$`)

// BlameLine is one parsed line of git-blame output.
type BlameLine struct {
	Commit     string
	Author     string
	Time       time.Time
	LineNumber int
	Code       string
}

// ParseBlameLine parses line as git-blame output, using timestampFormat
// (a reference-time layout, e.g. "2006-01-02 15:04:05 -0700") to parse
// the embedded timestamp.
func ParseBlameLine(line, timestampFormat string) (BlameLine, bool) {
	m := blameLineRegex.FindStringSubmatch(line)
	if m == nil {
		return BlameLine{}, false
	}
	t, err := time.Parse(timestampFormat, m[3])
	if err != nil {
		return BlameLine{}, false
	}
	lineNumber, err := strconv.Atoi(m[4])
	if err != nil {
		return BlameLine{}, false
	}
	return BlameLine{
		Commit:     m[1],
		Author:     m[2],
		Time:       t,
		LineNumber: lineNumber,
		Code:       m[5],
	}, true
}

// HandleBlameLine renders line as git-blame output if it parses as one,
// tracking the running commit key so that repeated lines from the same
// commit print blank metadata and consecutive distinct commits never
// collide on color. It reports false (without error) when line does not
// parse as blame output, so the caller can fall back to another handler.
func (h *Handlers) HandleBlameLine(line string) (bool, error) {
	blame, ok := ParseBlameLine(line, h.cfg.BlameTimestampFormat)
	if !ok {
		return false, nil
	}

	previousKey := h.previousBlameKey
	hasPrevious := h.blameHasPrevious
	isRepeat := hasPrevious && previousKey == blame.Commit

	formatData := h.cfg.BlameFormat
	metadata := formatBlameMetadata(formatData, blame)
	if isRepeat {
		metadata = spaces(gwidth.Width(metadata))
	}

	metadataStyle := h.blameMetadataStyle(blame.Commit, previousKey, hasPrevious, isRepeat)

	if _, err := fmt.Fprint(h.w, paint.PaintPlain(metadata, metadataStyle, nil)); err != nil {
		return true, err
	}

	highlighterSpans := h.highlightBlameCode(blame.Code)
	if _, err := fmt.Fprintln(h.w, paint.PaintPlain(blame.Code, metadataStyle, highlighterSpans)); err != nil {
		return true, err
	}

	h.previousBlameKey = blame.Commit
	h.blameHasPrevious = true
	return true, nil
}

// highlightBlameCode syntax-highlights blame's trailing source code using
// whatever language was already resolved for this stream (blame output
// does not carry its own file-extension marker past the first line).
func (h *Handlers) highlightBlameCode(code string) []highlight.Span {
	if h.cfg.Highlighter == nil || h.cfg.Language == "" {
		return nil
	}
	return h.cfg.Highlighter.Highlight(h.cfg.Language, code)
}

// blameMetadataStyle computes the style for one blame metadata field,
// assigning this commit's color (memoized in h.blameKeyColors) the first
// time it is seen and reusing it thereafter, unless it collides with the
// preceding line's color (see getBlameColor).
func (h *Handlers) blameMetadataStyle(key, previousKey string, hasPrevious, isRepeat bool) style.Style {
	var prevPtr *string
	if hasPrevious {
		prevPtr = &previousKey
	}
	color := h.getBlameColor(key, prevPtr, isRepeat)
	h.blameKeyColors[key] = color

	c, err := style.ParseColor(color)
	if err != nil {
		c = style.None
	}
	return style.Style{Foreground: c, IsSyntaxHighlighted: true}
}

// getBlameColor implements the collision-avoidance rule: a repeated key
// keeps its existing color; a fresh key takes the next palette color,
// skipping it only if that would collide with the immediately preceding
// line's color.
func (h *Handlers) getBlameColor(thisKey string, previousKey *string, isRepeat bool) string {
	keyColor, hasKeyColor := h.blameKeyColors[thisKey]
	var previousKeyColor string
	var hasPreviousKeyColor bool
	if previousKey != nil {
		previousKeyColor, hasPreviousKeyColor = h.blameKeyColors[*previousKey]
	}

	switch {
	case hasKeyColor && hasPreviousKeyColor && isRepeat:
		return keyColor
	case !hasKeyColor && hasPreviousKeyColor && !isRepeat:
		return h.nextBlameColor(&previousKeyColor)
	case !hasKeyColor && !hasPreviousKeyColor && !isRepeat:
		return h.nextBlameColor(nil)
	case hasKeyColor && hasPreviousKeyColor && !isRepeat:
		if keyColor != previousKeyColor {
			return keyColor
		}
		return h.nextBlameColor(&keyColor)
	default:
		// (no color, repeat) and (color, no previous color) are both
		// impossible states: a repeat requires a previous key with a
		// color, and once any line has been colored every later line
		// has a previous key with a color.
		return h.nextBlameColor(nil)
	}
}

// nextBlameColor returns the next unused palette slot, skipping the one
// slot that would collide with otherThanColor when given.
func (h *Handlers) nextBlameColor(otherThanColor *string) string {
	palette := h.cfg.BlamePalette
	nKeys := len(h.blameKeyColors)
	nColors := len(palette)
	color := palette[nKeys%nColors]
	if otherThanColor == nil || color != *otherThanColor {
		return color
	}
	return palette[(nKeys+1)%nColors]
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

var blamePlaceholderLabels = []string{"timestamp", "author", "commit"}

// ParseBlameFormat parses a --blame-format style string into format.Data.
func ParseBlameFormat(formatString string) []format.Data {
	return format.Parse(formatString, blamePlaceholderLabels, false)
}

// formatBlameMetadata renders one blame line's metadata fields (commit,
// author, humanized timestamp) according to formatData.
func formatBlameMetadata(formatData []format.Data, blame BlameLine) string {
	var s string
	suffix := ""
	for _, p := range formatData {
		s += p.Prefix

		align := format.AlignLeft
		if p.HasAlign {
			align = p.Align
		}
		width := 15
		if p.HasWidth {
			width = p.Width
		}
		precision := -1
		if p.HasPrecision {
			precision = p.Precision
		}

		var field string
		var hasField bool
		if p.HasPlaceholder {
			switch p.Placeholder.Name {
			case "timestamp":
				field = humanTime(blame.Time)
				hasField = true
			case "author":
				field = blame.Author
				hasField = true
			case "commit":
				field = blame.Commit
				hasField = true
			}
		}
		if hasField {
			s += format.PadString(field, width, align, precision)
		}
		suffix = p.Suffix
	}
	s += suffix
	return s
}

// humanTime renders t relative to now in a short "N units ago"/"in N
// units" form, matching chrono_humanize's default English phrasing
// closely enough for blame metadata display purposes.
func humanTime(t time.Time) string {
	d := time.Since(t)
	future := d < 0
	if future {
		d = -d
	}
	var n int
	var unit string
	switch {
	case d < time.Minute:
		n, unit = int(d/time.Second), "second"
	case d < time.Hour:
		n, unit = int(d/time.Minute), "minute"
	case d < 24*time.Hour:
		n, unit = int(d/time.Hour), "hour"
	case d < 30*24*time.Hour:
		n, unit = int(d/(24*time.Hour)), "day"
	case d < 365*24*time.Hour:
		n, unit = int(d/(30*24*time.Hour)), "month"
	default:
		n, unit = int(d/(365*24*time.Hour)), "year"
	}
	if n != 1 {
		unit += "s"
	}
	if future {
		return fmt.Sprintf("in %d %s", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
