// Package sidebyside reflows a single-column painted diff stream into
// two aligned columns, wrapping or truncating whichever side overflows
// its column width. It operates on already fully-painted lines (ANSI
// escapes included), re-slicing them by [internal/ansiscan]'s
// style-homogeneous spans so a wrap boundary never falls inside an SGR
// sequence or splits a grapheme cluster.
package sidebyside

import (
	"strings"

	"github.com/ibro45/diffpaint/internal/ansiscan"
	"github.com/ibro45/diffpaint/internal/gwidth"
	"github.com/ibro45/diffpaint/internal/style"
)

// separator is the literal column divider placed between the left and
// right cell of every row.
const separator = " │ "

// Options configures one Layout call.
type Options struct {
	// ColumnWidth is the content width of each column, in terminal
	// cells, excluding the separator.
	ColumnWidth int
	// WrapMaxLines caps the number of continuation rows a single
	// overflowing line may spill into before it is truncated with an
	// ellipsis in WrapStyle.
	WrapMaxLines int
	WrapStyle    style.Style
}

// ColumnWidthFromTerminal derives a column content width from the total
// terminal width available, reserving space for the separator between
// the two columns.
func ColumnWidthFromTerminal(totalWidth int) int {
	w := (totalWidth - len(separator)) / 2
	if w < 1 {
		w = 1
	}
	return w
}

// Layout pairs up left[i] with right[i] for every row index produced by
// 4.D's edit inference, padding whichever side is shorter with blank
// cells, and returns one already-joined output line per physical row
// (a logical row that wraps or gets truncated expands into more than
// one physical row).
func Layout(left, right []string, opt Options) []string {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	var out []string
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		out = append(out, layoutRow(l, r, opt)...)
	}
	return out
}

// layoutRow wraps left and right independently, then zips their
// resulting physical rows together, padding whichever side produces
// fewer rows with blank cells.
func layoutRow(left, right string, opt Options) []string {
	leftRows := wrapAndLimit(left, opt)
	rightRows := wrapAndLimit(right, opt)

	n := len(leftRows)
	if len(rightRows) > n {
		n = len(rightRows)
	}
	blank := blankCell(opt.ColumnWidth)
	rows := make([]string, n)
	for i := 0; i < n; i++ {
		l := blank
		if i < len(leftRows) {
			l = leftRows[i]
		}
		r := blank
		if i < len(rightRows) {
			r = rightRows[i]
		}
		rows[i] = l + separator + r
	}
	return rows
}

// styledRange is one ansiscan span's byte extent within the painted
// line's ANSI-stripped text, used to re-paint an arbitrary [start,end)
// slice of that stripped text without re-scanning escapes per wrap cut.
type styledRange struct {
	style      style.Style
	start, end int
}

// spanRanges flattens ansiscan's spans into byte ranges over the line's
// stripped text, which spanRanges itself reconstructs by concatenation.
func spanRanges(spans []ansiscan.Span) ([]styledRange, string) {
	ranges := make([]styledRange, len(spans))
	var stripped strings.Builder
	offset := 0
	for i, sp := range spans {
		start := offset
		stripped.WriteString(sp.Text)
		offset += len(sp.Text)
		ranges[i] = styledRange{style: sp.Style, start: start, end: offset}
	}
	return ranges, stripped.String()
}

// paintRange re-paints stripped[a:b), which may straddle several
// styled ranges, preserving each range's own style across the cut.
func paintRange(ranges []styledRange, stripped string, a, b int) string {
	var out strings.Builder
	pos := a
	for pos < b {
		for _, r := range ranges {
			if pos >= r.start && pos < r.end {
				end := r.end
				if end > b {
					end = b
				}
				out.WriteString(r.style.Paint(stripped[pos:end]))
				pos = end
				break
			}
		}
	}
	return out.String()
}

// wrapAndLimit splits one painted line into physical rows no wider than
// opt.ColumnWidth, capping the count at opt.WrapMaxLines+1 and
// truncating the final row with an ellipsis when more content remains
// beyond that cap. Every returned row is right-padded to exactly
// opt.ColumnWidth cells.
func wrapAndLimit(painted string, opt Options) []string {
	width := opt.ColumnWidth
	if width <= 0 {
		return []string{""}
	}
	limit := opt.WrapMaxLines + 1
	if limit < 1 {
		limit = 1
	}

	ranges, stripped := spanRanges(ansiscan.Scan(painted))
	boundaries := rowBoundaries(stripped, width)

	truncated := false
	if len(boundaries) > limit {
		boundaries = boundaries[:limit]
		truncated = true
	}

	rows := make([]string, len(boundaries))
	for i, b := range boundaries {
		if truncated && i == len(boundaries)-1 {
			end := shrinkByOneCell(stripped, b.start, b.end)
			rows[i] = paintRange(ranges, stripped, b.start, end) + opt.WrapStyle.Paint("…")
		} else {
			rows[i] = paintRange(ranges, stripped, b.start, b.end)
		}
	}
	return padChunks(rows, width)
}

type rowBoundary struct{ start, end int }

// rowBoundaries splits stripped into consecutive byte ranges, each no
// wider than width cells, breaking only at grapheme-cluster boundaries.
func rowBoundaries(stripped string, width int) []rowBoundary {
	var rows []rowBoundary
	pos := 0
	curStart := 0
	curWidth := 0
	for _, g := range gwidth.Graphemes(stripped) {
		gw := gwidth.Width(g)
		if curWidth+gw > width && curWidth > 0 {
			rows = append(rows, rowBoundary{curStart, pos})
			curStart = pos
			curWidth = 0
		}
		pos += len(g)
		curWidth += gw
	}
	rows = append(rows, rowBoundary{curStart, pos})
	return rows
}

// shrinkByOneCell drops the last grapheme cluster from stripped[start:end),
// making room for a one-cell-wide ellipsis marker.
func shrinkByOneCell(stripped string, start, end int) int {
	graphemes := gwidth.Graphemes(stripped[start:end])
	if len(graphemes) == 0 {
		return end
	}
	return end - len(graphemes[len(graphemes)-1])
}

// padChunks right-pads each already-painted chunk with spaces so every
// row occupies exactly width on-screen cells.
func padChunks(chunks []string, width int) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		if w := ansiscan.MeasureWidth(c); w < width {
			c += strings.Repeat(" ", width-w)
		}
		out[i] = c
	}
	return out
}

func blankCell(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}
