// Package linenumbers renders the old/new line-number gutter using the
// format-string placeholders "nm" (number-minus) and "np" (number-plus).
package linenumbers

import (
	"strings"

	"github.com/ibro45/diffpaint/internal/format"
)

// Counters tracks the running old-file and new-file line numbers as a
// hunk is walked line by line.
type Counters struct {
	Minus int
	Plus  int
}

// NewCounters seeds the counters from a hunk header's starting line
// numbers.
func NewCounters(minusStart, plusStart int) Counters {
	return Counters{Minus: minusStart, Plus: plusStart}
}

// AdvanceMinus moves the old-file counter forward by one line.
func (c *Counters) AdvanceMinus() { c.Minus++ }

// AdvancePlus moves the new-file counter forward by one line.
func (c *Counters) AdvancePlus() { c.Plus++ }

// ParseFormat parses a line-number format string (e.g.
// "{nm:>4}│{np:>4}│ ") into segments, restricted to the "nm"/"np"
// placeholder vocabulary.
func ParseFormat(formatString string, prefixWithSpace bool) []format.Data {
	return format.Parse(formatString, []string{"nm", "np"}, prefixWithSpace)
}

// Render formats one gutter line. hasMinus/hasPlus indicate whether this
// diff line has a corresponding old/new line number at all (a pure
// addition has no old number, a pure deletion has no new number); when a
// side is absent, its field renders as blank padding rather than a
// number so that columns keep lining up. hunkMaxLineNumberWidth is the
// width of the largest number that will appear anywhere in the current
// hunk, so the whole gutter column can be sized once per hunk rather
// than per line.
func Render(formatData []format.Data, counters Counters, hasMinus, hasPlus bool, hunkMaxLineNumberWidth int) string {
	var b strings.Builder
	suffix := ""
	for _, d := range formatData {
		b.WriteString(d.Prefix)

		contentWidth, _ := d.FieldWidth(hunkMaxLineNumberWidth)
		fieldWidth := contentWidth - d.PrefixLen

		if d.HasPlaceholder {
			align := format.AlignRight
			if d.HasAlign {
				align = d.Align
			}
			switch d.Placeholder.Kind {
			case format.PlaceholderNumberMinus:
				if hasMinus {
					b.WriteString(format.PadNumber(counters.Minus, fieldWidth, align))
				} else {
					b.WriteString(strings.Repeat(" ", fieldWidth))
				}
			case format.PlaceholderNumberPlus:
				if hasPlus {
					b.WriteString(format.PadNumber(counters.Plus, fieldWidth, align))
				} else {
					b.WriteString(strings.Repeat(" ", fieldWidth))
				}
			}
		}

		suffix = d.Suffix
	}
	b.WriteString(suffix)
	return b.String()
}
