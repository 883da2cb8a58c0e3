// Package ansiscan scans a line of text that may already contain ANSI SGR
// escape sequences (as produced by `git diff --color` or similar) into a
// sequence of style-homogeneous spans, and measures the on-screen width of
// such a line ignoring the escape bytes themselves.
package ansiscan

import (
	"strconv"
	"strings"

	"github.com/ibro45/diffpaint/internal/gwidth"
	"github.com/ibro45/diffpaint/internal/style"
)

// Span is a maximal run of text painted with a single, already-resolved
// Style. Concatenating every Span's Text reconstructs the line with all
// ANSI escapes stripped.
type Span struct {
	Style style.Style
	Text  string
}

// Scan walks line, accumulating SGR (`ESC [ ... m`) parameters into a
// running Style and splitting the text into spans each time the style
// changes. Non-SGR CSI sequences and OSC sequences are recognized and
// dropped (they carry no paintable text and spec.md does not require
// diffpaint to reproduce cursor-movement or title-setting sequences).
func Scan(line string) []Span {
	var spans []Span
	var current style.Style
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			spans = append(spans, Span{Style: current, Text: buf.String()})
			buf.Reset()
		}
	}

	i := 0
	n := len(line)
	for i < n {
		if line[i] == 0x1b && i+1 < n {
			switch line[i+1] {
			case '[':
				end, params, final := scanCSI(line, i+2)
				if final == 'm' {
					flush()
					current = applySGR(current, params)
				}
				i = end
				continue
			case ']':
				end := scanOSC(line, i+2)
				i = end
				continue
			}
		}
		r, size := decodeRune(line[i:])
		buf.WriteString(line[i : i+size])
		_ = r
		i += size
	}
	flush()
	return spans
}

func decodeRune(s string) (rune, int) {
	for i, r := range s {
		_ = i
		return r, len(string(r))
	}
	return 0, 1
}

// scanCSI scans a CSI sequence's parameter/intermediate bytes starting
// just after "ESC [", returning the index just past the final byte, the
// parsed numeric parameters (empty entries treated as 0), and the final
// byte itself.
func scanCSI(s string, start int) (end int, params []int, final byte) {
	i := start
	n := len(s)
	paramStart := i
	for i < n {
		b := s[i]
		if b >= 0x40 && b <= 0x7e {
			final = b
			params = parseParams(s[paramStart:i])
			return i + 1, params, final
		}
		i++
	}
	return n, nil, 0
}

func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			v = 0
		}
		out[i] = v
	}
	return out
}

// scanOSC scans an OSC sequence starting just after "ESC ]", terminated
// by BEL (0x07) or ST ("ESC \"), returning the index just past the
// terminator.
func scanOSC(s string, start int) int {
	i := start
	n := len(s)
	for i < n {
		if s[i] == 0x07 {
			return i + 1
		}
		if s[i] == 0x1b && i+1 < n && s[i+1] == '\\' {
			return i + 2
		}
		i++
	}
	return n
}

// applySGR folds SGR parameters onto base the way a real terminal would:
// sequentially, with 0 resetting to zero value and color-introducer codes
// (38/48) consuming the following 2 or 4 parameters.
func applySGR(base style.Style, params []int) style.Style {
	if len(params) == 0 {
		return style.Style{}
	}
	s := base
	for i := 0; i < len(params); i++ {
		switch params[i] {
		case 0:
			s = style.Style{}
		case 1:
			s.Bold = true
		case 2:
			s.Dim = true
		case 3:
			s.Italic = true
		case 4:
			s.Underline = true
		case 5, 6:
			s.Blink = true
		case 7:
			s.Reverse = true
		case 9:
			s.Strike = true
		case 21:
			s.Bold = false
		case 22:
			s.Bold, s.Dim = false, false
		case 23:
			s.Italic = false
		case 24:
			s.Underline = false
		case 25:
			s.Blink = false
		case 27:
			s.Reverse = false
		case 28:
		case 29:
			s.Strike = false
		case 30, 31, 32, 33, 34, 35, 36, 37:
			s.Foreground = style.IndexedColor(uint8(params[i] - 30))
		case 38:
			if c, used := parseSGRColor(params[i:]); used > 0 {
				s.Foreground = c
				i += used
			}
		case 39:
			s.Foreground = style.None
		case 40, 41, 42, 43, 44, 45, 46, 47:
			s.Background = style.IndexedColor(uint8(params[i] - 40))
		case 48:
			if c, used := parseSGRColor(params[i:]); used > 0 {
				s.Background = c
				i += used
			}
		case 49:
			s.Background = style.None
		case 90, 91, 92, 93, 94, 95, 96, 97:
			s.Foreground = style.IndexedColor(uint8(params[i] - 90 + 8))
		case 100, 101, 102, 103, 104, 105, 106, 107:
			s.Background = style.IndexedColor(uint8(params[i] - 100 + 8))
		}
	}
	return s
}

// parseSGRColor parses the extended-color introducer (38 or 48) starting
// at params[0], returning the resolved Color and how many additional
// parameters (beyond the introducer itself) it consumed.
func parseSGRColor(params []int) (style.Color, int) {
	if len(params) < 2 {
		return style.Color{}, 0
	}
	switch params[1] {
	case 2:
		if len(params) < 5 {
			return style.Color{}, 0
		}
		r, g, b := params[2], params[3], params[4]
		if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
			return style.Color{}, 0
		}
		return style.RGBColor(uint8(r), uint8(g), uint8(b)), 4
	case 5:
		if len(params) < 3 {
			return style.Color{}, 0
		}
		idx := params[2]
		if idx < 0 || idx > 255 {
			return style.Color{}, 0
		}
		return style.IndexedColor(uint8(idx)), 2
	default:
		return style.Color{}, 0
	}
}

// DropFirstRune returns line with its first visible (non-escape) rune
// removed, leaving every ANSI escape sequence intact — including any
// that precede that rune. Used to strip a unified diff's leading
// +/-/space marker from a line that may already carry color without
// disturbing that color.
func DropFirstRune(line string) string {
	i := 0
	n := len(line)
	for i < n {
		if line[i] == 0x1b && i+1 < n {
			switch line[i+1] {
			case '[':
				end, _, _ := scanCSI(line, i+2)
				i = end
				continue
			case ']':
				i = scanOSC(line, i+2)
				continue
			}
		}
		_, size := decodeRune(line[i:])
		return line[:i] + line[i+size:]
	}
	return line
}

// Strip returns line with every recognized ANSI escape sequence removed.
func Strip(line string) string {
	var b strings.Builder
	for _, span := range Scan(line) {
		b.WriteString(span.Text)
	}
	return b.String()
}

// MeasureWidth returns the terminal-cell width of line, ignoring any
// embedded ANSI escapes and accounting for grapheme clusters and
// East-Asian wide runes in the remaining visible text.
func MeasureWidth(line string) int {
	return gwidth.Width(Strip(line))
}
