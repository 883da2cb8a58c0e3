// Package editinfer infers which parts of a run of consecutive removed
// ("minus") and added ("plus") diff lines are genuinely edited, by
// pairing up minus/plus lines whose normalized edit distance is small
// enough to call them homologous, then coalescing the grapheme-level
// alignment into intra-line edit spans.
package editinfer

import (
	"strings"
	"unicode"

	"github.com/ibro45/diffpaint/internal/align"
	"github.com/ibro45/diffpaint/internal/gwidth"
)

// DefaultMaxLineLength is the grapheme-count alignment prefix bound used
// when a caller passes maxLineLength <= 0.
const DefaultMaxLineLength = 512

// Op tags one annotation span: whether it is unedited context on the
// minus or plus side, or part of a deletion/insertion.
type Op int

const (
	MinusNoop Op = iota
	PlusNoop
	Deletion
	Insertion
)

// Annotation is one contiguous span of a line with a single Op.
type Annotation struct {
	Op   Op
	Text string
}

// AnnotatedLine is a full line expressed as a sequence of Annotations
// whose Text fields concatenate back to the (trailing-whitespace
// trimmed) line.
type AnnotatedLine []Annotation

// InferEdits pairs up minusLines and plusLines by normalized edit
// distance and returns both sides in annotated form. A minus line is
// paired with the first not-yet-emitted plus line whose normalized edit
// distance against it is below distanceThreshold; plus lines considered
// and rejected along the way are emitted unpaired before the pairing
// plus line is emitted. Minus lines with no homolog, and any trailing
// unconsidered plus lines, are emitted unpaired as a single whole-line
// Annotation.
//
// Alignment itself only ever looks at the first maxLineLength graphemes
// of each line (maxLineLength <= 0 means DefaultMaxLineLength), bounding
// the O(n*m) table to a fixed-size prefix regardless of how long the
// lines actually are; any remainder past that prefix is still echoed,
// appended to the line's trailing annotation unedited.
func InferEdits(minusLines, plusLines []string, distanceThreshold float64, maxLineLength int) (annotatedMinus, annotatedPlus []AnnotatedLine) {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	emitted := 0 // plus lines emitted so far

minusLoop:
	for _, rawMinus := range minusLines {
		minusLine := trimTrailingSpace(rawMinus)
		minusPrefix := gwidth.TruncateGraphemeCount(minusLine, maxLineLength)
		considered := 0

		for k := emitted; k < len(plusLines); k++ {
			plusLine := trimTrailingSpace(plusLines[k])
			plusPrefix := gwidth.TruncateGraphemeCount(plusLine, maxLineLength)
			table := align.New(align.Units(minusPrefix), align.Units(plusPrefix))

			if table.NormalizedEditDistance() < distanceThreshold {
				for _, rejected := range plusLines[emitted : emitted+considered] {
					annotatedPlus = append(annotatedPlus, AnnotatedLine{{PlusNoop, trimTrailingSpace(rejected)}})
				}
				emitted += considered

				annotatedMinus = append(annotatedMinus, coalesceMinusEdits(table, minusLine, minusPrefix))
				annotatedPlus = append(annotatedPlus, coalescePlusEdits(table, plusLine, plusPrefix))
				emitted++

				continue minusLoop
			}
			considered++
		}
		annotatedMinus = append(annotatedMinus, AnnotatedLine{{MinusNoop, minusLine}})
	}

	for _, remaining := range plusLines[emitted:] {
		annotatedPlus = append(annotatedPlus, AnnotatedLine{{PlusNoop, trimTrailingSpace(remaining)}})
	}

	return annotatedMinus, annotatedPlus
}

func trimTrailingSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

func coalesceMinusEdits(table *align.Table, line, prefix string) AnnotatedLine {
	ops := align.EditOperations(table, MinusNoop, Deletion, Deletion, Insertion, true)
	return appendUnalignedTail(coalesceEdits(ops, prefix, Insertion), line, prefix, MinusNoop)
}

func coalescePlusEdits(table *align.Table, line, prefix string) AnnotatedLine {
	ops := align.EditOperations(table, PlusNoop, Insertion, Deletion, Insertion, false)
	return appendUnalignedTail(coalesceEdits(ops, prefix, Deletion), line, prefix, PlusNoop)
}

// appendUnalignedTail folds the portion of line past prefix (i.e. past
// the max-line-length alignment bound) onto edits as unedited trailing
// text, merging it into the last annotation when that annotation is
// already the same noop Op.
func appendUnalignedTail(edits AnnotatedLine, line, prefix string, noop Op) AnnotatedLine {
	if len(prefix) >= len(line) {
		return edits
	}
	tail := line[len(prefix):]
	if n := len(edits); n > 0 && edits[n-1].Op == noop {
		edits[n-1].Text += tail
		return edits
	}
	return append(edits, Annotation{noop, tail})
}

// coalesceEdits drops spans tagged irrelevant (the edit kind that
// belongs to the other side's line), then merges consecutive runs of the
// same Op into one byte-sliced Annotation.
func coalesceEdits(ops []align.Op[Op], line string, irrelevant Op) AnnotatedLine {
	var filtered []align.Op[Op]
	for _, o := range ops {
		if o.Op != irrelevant {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	var edits AnnotatedLine
	lastOp := filtered[0].Op
	lastOffset := filtered[0].Unit.Offset
	currOp := lastOp
	currOffset := lastOffset

	for _, o := range filtered[1:] {
		currOp = o.Op
		currOffset = o.Unit.Offset
		if currOp != lastOp {
			edits = append(edits, Annotation{lastOp, line[lastOffset:currOffset]})
			lastOffset = currOffset
			lastOp = currOp
		}
	}
	if currOp == lastOp {
		edits = append(edits, Annotation{lastOp, line[lastOffset:]})
	}
	return edits
}
