// Package align computes a Needleman-Wunsch/Wagner-Fischer edit-distance
// table over two sequences of grapheme clusters and extracts both the
// edit distance and the full edit-operation trace from it.
//
// Everything here operates on grapheme clusters rather than bytes or
// runes, since a pair of minus/plus lines with multi-byte or
// multi-codepoint characters must align cluster-for-cluster for the
// resulting emphasis spans to land on character boundaries a human
// reads as one unit.
package align

import "github.com/ibro45/diffpaint/internal/gwidth"

// Unit is one grapheme cluster together with its byte offset in the
// original string it was extracted from.
type Unit struct {
	Offset int
	Text   string
}

// Units splits s into its grapheme clusters, pairing each with its byte
// offset within s.
func Units(s string) []Unit {
	graphemes := gwidth.Graphemes(s)
	units := make([]Unit, len(graphemes))
	offset := 0
	for i, g := range graphemes {
		units[i] = Unit{Offset: offset, Text: g}
		offset += len(g)
	}
	return units
}

// Table is a filled edit-distance table over two grapheme sequences.
type Table struct {
	XX, YY []Unit
	table  []int
	path   []int
	dim    [2]int
}

// New builds and fills the table for xx against yy.
func New(xx, yy []Unit) *Table {
	dim := [2]int{len(yy) + 1, len(xx) + 1}
	t := &Table{
		XX:    xx,
		YY:    yy,
		table: make([]int, dim[0]*dim[1]),
		path:  make([]int, dim[0]*dim[1]),
		dim:   dim,
	}
	t.fill()
	return t
}

func (t *Table) index(i, j int) int { return j*t.dim[1] + i }

func (t *Table) reverseIndex(n int) (int, int) { return n % t.dim[1], n / t.dim[1] }

func (t *Table) cell(i, j int) int { return t.table[t.index(i, j)] }

func (t *Table) fill() {
	for i := 1; i < t.dim[1]; i++ {
		t.table[i] = i
	}
	for j := 1; j < t.dim[0]; j++ {
		t.table[j*t.dim[1]] = j
	}
	for i := 1; i <= len(t.XX); i++ {
		x := t.XX[i-1]
		for j := 1; j <= len(t.YY); j++ {
			y := t.YY[j-1]
			subCost := t.cell(i-1, j-1)
			if x.Text != y.Text {
				subCost++
			}
			delCost := t.cell(i-1, j) + 1
			insCost := t.cell(i, j-1) + 1

			idx := t.index(i, j)
			m := min3(subCost, delCost, insCost)
			t.table[idx] = m
			switch {
			case m == subCost:
				t.path[idx] = t.index(i-1, j-1)
			case m == delCost:
				t.path[idx] = t.index(i-1, j)
			default:
				t.path[idx] = t.index(i, j-1)
			}
		}
	}
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// EditDistance returns the table's bottom-right cell.
func (t *Table) EditDistance() int {
	return t.table[len(t.table)-1]
}

// NormalizedEditDistance divides EditDistance by the longer of the two
// input lengths, giving a 0..1 distance independent of length (0 means
// identical inputs).
func (t *Table) NormalizedEditDistance() float64 {
	d := len(t.XX)
	if len(t.YY) > d {
		d = len(t.YY)
	}
	if d == 0 {
		return 0
	}
	return float64(t.EditDistance()) / float64(d)
}

// Op pairs an edit operation tag with the Unit it applies to: the
// consumed x-unit when forwards is true, the consumed y-unit otherwise.
type Op[T any] struct {
	Op   T
	Unit Unit
}

// EditOperations walks the table's back-pointers from the bottom-right
// cell to the origin and returns, in forward (left-to-right) order, one
// Op per aligned position. noop/substitution/deletion/insertion are the
// caller's tags for each edit kind; forwards selects whether each Op
// carries the x-side or y-side unit (matching the original's ability to
// reconstruct either the minus-line or the plus-line annotation from the
// same trace).
//
// EditOperations is a package-level function rather than a method because
// Go does not allow a method to introduce its own type parameter.
func EditOperations[T any](t *Table, noop, substitution, deletion, insertion T, forwards bool) []Op[T] {
	var ops []Op[T]
	i, j := len(t.XX), len(t.YY)

	for i > 0 && j > 0 {
		x := t.XX[i-1]
		y := t.YY[j-1]
		pi, pj := t.reverseIndex(t.path[t.index(i, j)])

		var op T
		switch {
		case pi == i-1 && pj == j:
			op = deletion
		case x.Text == y.Text && pi == i-1 && pj == j-1:
			op = noop
		case x.Text != y.Text && pi == i-1 && pj == j-1:
			op = substitution
		default:
			op = insertion
		}

		var unit Unit
		if forwards {
			unit = x
		} else {
			unit = y
		}
		ops = append(ops, Op[T]{Op: op, Unit: unit})
		i, j = pi, pj
	}

	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}
