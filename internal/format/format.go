// Package format implements the `{name:align width.precision type}`
// placeholder grammar used by line-number and blame-metadata format
// strings, plus the padding engine that renders a value into a field of
// that width with strings' center-left and numbers' center-right bias.
package format

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ibro45/diffpaint/internal/gwidth"
)

// PlaceholderKind discriminates the handful of named placeholders a
// format string may reference.
type PlaceholderKind int

const (
	// PlaceholderNumberMinus is the "nm" placeholder (old line number).
	PlaceholderNumberMinus PlaceholderKind = iota
	// PlaceholderNumberPlus is the "np" placeholder (new line number).
	PlaceholderNumberPlus
	// PlaceholderStr is any other named placeholder (e.g. "commit",
	// "author", "timestamp", "file", "syntax").
	PlaceholderStr
)

// Placeholder is one `{name}` reference resolved out of a format string.
type Placeholder struct {
	Kind PlaceholderKind
	Name string // set when Kind == PlaceholderStr
}

func placeholderFromLabel(label string) Placeholder {
	switch label {
	case "nm":
		return Placeholder{Kind: PlaceholderNumberMinus}
	case "np":
		return Placeholder{Kind: PlaceholderNumberPlus}
	default:
		return Placeholder{Kind: PlaceholderStr, Name: label}
	}
}

// Align is the alignment spec of a placeholder's format section.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func parseAlign(s string) (Align, bool) {
	switch s {
	case "<":
		return AlignLeft, true
	case "^":
		return AlignCenter, true
	case ">":
		return AlignRight, true
	default:
		return 0, false
	}
}

// Data is one parsed segment of a format string: literal prefix text,
// an optional placeholder with its format spec, and literal suffix text
// that runs from the end of the placeholder to the end of the string
// (so each segment's Suffix repeats all later text; renderers emit only
// the last segment's Suffix).
type Data struct {
	Prefix    string
	PrefixLen int

	HasPlaceholder bool
	Placeholder    Placeholder

	HasAlign bool
	Align    Align

	HasWidth bool
	Width    int

	HasPrecision bool
	Precision    int

	FmtType string

	Suffix    string
	SuffixLen int
}

// FieldWidth returns the (content width, suffix width) pair used to lay
// out a rendered line: the content width is the prefix plus the larger
// of the placeholder's own width spec and, when a placeholder is
// present, hunkMaxLineNumberWidth (so a column of line numbers all
// align on the widest number actually present in the hunk).
func (d Data) FieldWidth(hunkMaxLineNumberWidth int) (content int, suffix int) {
	w := d.Width
	if d.HasPlaceholder && hunkMaxLineNumberWidth > w {
		w = hunkMaxLineNumberWidth
	}
	return d.PrefixLen + w, d.SuffixLen
}

// oddPadChar pads the first placeholder's prefix by one cell when a
// caller requests prefixWithSpace, matching the side-by-side layout's
// need to keep odd-width panels visually balanced.
const oddPadChar = ' '

var placeholderRegexCache = map[string]*regexp.Regexp{}

// placeholderRegex builds (and caches) the regexp matching any of the
// given placeholder labels in `{label:align width.precision type}` form.
// fill characters are matched but not captured separately from align,
// since diffpaint only ever pads with spaces.
func placeholderRegex(labels []string) *regexp.Regexp {
	key := strings.Join(labels, "|")
	if re, ok := placeholderRegexCache[key]; ok {
		return re
	}
	pattern := `\{(` + key + `)(?::(?:[^<^>]?([<^>]))?(\d+)?(?:\.(\d+))?(?:_?([A-Za-z][0-9A-Za-z_-]*))?)?\}`
	re := regexp.MustCompile(pattern)
	placeholderRegexCache[key] = re
	return re
}

// Parse parses formatString into a non-empty sequence of Data segments,
// one per placeholder occurrence, or a single placeholder-less segment
// holding the whole string when it contains no placeholder. allowedNames lists the placeholder labels this format
// string may reference (e.g. {"nm", "np"} for a line-number format, or
// {"timestamp", "author", "commit"} for a blame format). When
// prefixWithSpace is true, the very first segment's prefix is prefixed
// with one extra space character.
func Parse(formatString string, allowedNames []string, prefixWithSpace bool) []Data {
	re := placeholderRegex(allowedNames)
	matches := re.FindAllStringSubmatchIndex(formatString, -1)

	var out []Data
	offset := 0
	expandedFirst := false

	expandPrefix := func(prefix string) string {
		if prefixWithSpace && !expandedFirst {
			expandedFirst = true
			return string(oddPadChar) + prefix
		}
		return prefix
	}

	for _, m := range matches {
		start, end := m[0], m[1]
		prefix := expandPrefix(formatString[offset:start])
		suffix := formatString[end:]

		d := Data{
			Prefix:    prefix,
			PrefixLen: len(gwidth.Graphemes(prefix)),
			Suffix:    suffix,
			SuffixLen: len(gwidth.Graphemes(suffix)),
		}
		if label := groupString(formatString, m, 1); label != "" || m[2] >= 0 {
			d.HasPlaceholder = true
			d.Placeholder = placeholderFromLabel(label)
		}
		if a := groupString(formatString, m, 2); a != "" {
			if align, ok := parseAlign(a); ok {
				d.HasAlign = true
				d.Align = align
			}
		}
		if w := groupString(formatString, m, 3); w != "" {
			if n, err := strconv.Atoi(w); err == nil {
				d.HasWidth = true
				d.Width = n
			}
		}
		if p := groupString(formatString, m, 4); p != "" {
			if n, err := strconv.Atoi(p); err == nil {
				d.HasPrecision = true
				d.Precision = n
			}
		}
		d.FmtType = groupString(formatString, m, 5)

		out = append(out, d)
		offset = end
	}

	if offset == 0 {
		prefix := expandPrefix("")
		out = append(out, Data{
			Prefix:    prefix,
			PrefixLen: len(gwidth.Graphemes(prefix)),
			Suffix:    formatString,
			SuffixLen: len(gwidth.Graphemes(formatString)),
		})
	}

	return out
}

// groupString returns the text of submatch group i (1-indexed, matching
// regexp.FindAllStringSubmatchIndex's pairing) or "" if it didn't
// participate in the match.
func groupString(s string, m []int, i int) string {
	lo, hi := m[2*i], m[2*i+1]
	if lo < 0 || hi < 0 {
		return ""
	}
	return s[lo:hi]
}

// log10Plus1 returns floor(log10(n))+1, the base-10 digit width of n,
// treating 0 as width 1.
func log10Plus1(n int) int {
	length := 0
	for {
		switch {
		case n <= 9:
			return length + 1
		case n <= 99:
			return length + 2
		case n <= 999:
			return length + 3
		case n <= 9999:
			return length + 4
		}
		length += 4
		n /= 10000
	}
}

// centerRightSpaceForNumber returns " " when centering n in width cells
// would otherwise land the extra padding cell on the left (because the
// digit count and the requested width have different parity), else "".
// Prepending this space and then dropping the overall last character
// shifts a numeric center-alignment's bias from left to right.
func centerRightSpaceForNumber(n int, align Align, width int) string {
	if align != AlignCenter {
		return ""
	}
	w := log10Plus1(n)
	if width > w && width%2 != w%2 {
		return " "
	}
	return ""
}

// PadString pads s to width cells with the given alignment, truncating
// to precision graphemes first when precision is non-negative. Strings
// always center-left (no centerRightSpaceForNumber bias).
func PadString(s string, width int, align Align, precision int) string {
	if precision >= 0 {
		g := gwidth.Graphemes(s)
		if len(g) > precision {
			s = strings.Join(g[:precision], "")
		}
	}
	return pad(s, width, align, "")
}

// PadNumber formats n as decimal and pads it to width cells with the
// given alignment, applying the center-right bias numbers get under
// Align Center.
func PadNumber(n int, width int, align Align) string {
	space := centerRightSpaceForNumber(n, align, width)
	return pad(strconv.Itoa(n), width, align, space)
}

func pad(content string, width int, align Align, centerRightSpace string) string {
	contentLen := len(gwidth.Graphemes(content))
	padTotal := width - contentLen
	if padTotal < 0 {
		padTotal = 0
	}

	var b strings.Builder
	b.WriteString(centerRightSpace)
	switch align {
	case AlignLeft:
		b.WriteString(content)
		b.WriteString(strings.Repeat(" ", padTotal))
	case AlignRight:
		b.WriteString(strings.Repeat(" ", padTotal))
		b.WriteString(content)
	default: // AlignCenter
		left := padTotal / 2
		right := padTotal - left
		b.WriteString(strings.Repeat(" ", left))
		b.WriteString(content)
		b.WriteString(strings.Repeat(" ", right))
	}

	result := b.String()
	if centerRightSpace == " " {
		runes := []rune(result)
		result = string(runes[:len(runes)-1])
	}
	return result
}
