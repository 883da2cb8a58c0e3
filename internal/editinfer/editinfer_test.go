package editinfer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const distanceMax = 2.0

func TestCoalesceEdits(t *testing.T) {
	// Two adjacent same-op spans over "ab" merge into one Annotation.
	minus, plus := InferEdits([]string{"ab\n"}, []string{"ab\n"}, distanceMax, 0)
	assert.Equal(t, []AnnotatedLine{{{MinusNoop, "ab"}}}, minus)
	assert.Equal(t, []AnnotatedLine{{{PlusNoop, "ab"}}}, plus)
}

func TestInferEdits1(t *testing.T) {
	minus, plus := InferEdits([]string{"aaa\n"}, []string{"aba\n"}, distanceMax, 0)
	assertConsistentPairs(t, minus, plus)
	assert.Equal(t, []AnnotatedLine{
		{{MinusNoop, "a"}, {Deletion, "a"}, {MinusNoop, "a"}},
	}, minus)
	assert.Equal(t, []AnnotatedLine{
		{{PlusNoop, "a"}, {Insertion, "b"}, {PlusNoop, "a"}},
	}, plus)
}

func TestInferEdits2(t *testing.T) {
	minus, plus := InferEdits([]string{"áaa\n"}, []string{"ááb\n"}, distanceMax, 0)
	assertConsistentPairs(t, minus, plus)
	assert.Equal(t, []AnnotatedLine{
		{{MinusNoop, "á"}, {Deletion, "aa"}},
	}, minus)
	assert.Equal(t, []AnnotatedLine{
		{{PlusNoop, "á"}, {Insertion, "áb"}},
	}, plus)
}

func TestInferEdits3(t *testing.T) {
	minus, plus := InferEdits([]string{"d.iteritems()\n"}, []string{"d.items()\n"}, distanceMax, 0)
	assertConsistentPairs(t, minus, plus)
	assert.Equal(t, []AnnotatedLine{
		{{MinusNoop, "d."}, {Deletion, "iter"}, {MinusNoop, "items()"}},
	}, minus)
	assert.Equal(t, []AnnotatedLine{
		{{PlusNoop, "d.items()"}},
	}, plus)
}

func TestInferEdits4(t *testing.T) {
	minus, plus := InferEdits(
		[]string{"áaaáaaáaa\n", "áábáábááb\n"},
		[]string{"áábáácááb\n"},
		0.66,
		0,
	)
	assert.Equal(t, []AnnotatedLine{
		{{MinusNoop, "áaaáaaáaa"}},
		{{MinusNoop, "áábáá"}, {Deletion, "b"}, {MinusNoop, "ááb"}},
	}, minus)
	assert.Equal(t, []AnnotatedLine{
		{{PlusNoop, "áábáá"}, {Insertion, "c"}, {PlusNoop, "ááb"}},
	}, plus)
}

func TestInferEdits5(t *testing.T) {
	minus, plus := InferEdits(
		[]string{"aaaaaaaa\n", "bbbbbbbb\n", "cccccccc\n"},
		[]string{"bbbb!bbb\n", "dddddddd\n", "cccc!ccc\n"},
		0.66,
		0,
	)
	assert.Equal(t, []AnnotatedLine{
		{{MinusNoop, "aaaaaaaa"}},
		{{MinusNoop, "bbbb"}, {Deletion, "b"}, {MinusNoop, "bbb"}},
		{{MinusNoop, "cccc"}, {Deletion, "c"}, {MinusNoop, "ccc"}},
	}, minus)
	assert.Equal(t, []AnnotatedLine{
		{{PlusNoop, "bbbb"}, {Insertion, "!"}, {PlusNoop, "bbb"}},
		{{PlusNoop, "dddddddd"}},
		{{PlusNoop, "cccc"}, {Insertion, "!"}, {PlusNoop, "ccc"}},
	}, plus)
}

func TestInferEdits6NoHomologs(t *testing.T) {
	minusLines := []string{
		"             let mut i = 0;\n",
		"             for ((_, c0), (_, c1)) in s0.zip(s1) {\n",
		"                 if c0 != c1 {\n",
		"                     break;\n",
		"                 } else {\n",
		"                     i += c0.len();\n",
		"                 }\n",
		"             }\n",
		"             i\n",
	}
	plusLines := []string{
		"             s0.zip(s1)\n",
		"                 .take_while(|((_, c0), (_, c1))| c0 == c1) // TODO: Don't consume one-past-the-end!\n",
		"                 .fold(0, |offset, ((_, c0), (_, _))| offset + c0.len())\n",
	}
	minus, plus := InferEdits(minusLines, plusLines, 0.66, 0)

	var wantMinus []AnnotatedLine
	for _, l := range minusLines {
		wantMinus = append(wantMinus, AnnotatedLine{{MinusNoop, trimTrailingSpace(l)}})
	}
	var wantPlus []AnnotatedLine
	for _, l := range plusLines {
		wantPlus = append(wantPlus, AnnotatedLine{{PlusNoop, trimTrailingSpace(l)}})
	}
	assert.Equal(t, wantMinus, minus)
	assert.Equal(t, wantPlus, plus)
}

func TestInferEditsMaxLineLengthBoundsAlignmentButEchoesFullLine(t *testing.T) {
	minusLine := strings.Repeat("a", 10) + "X" + strings.Repeat("a", 10)
	plusLine := strings.Repeat("a", 10) + "Y" + strings.Repeat("a", 10)

	minus, plus := InferEdits([]string{minusLine}, []string{plusLine}, distanceMax, 5)

	require.Len(t, minus, 1)
	require.Len(t, plus, 1)
	assert.Equal(t, minusLine, concatText(minus[0]))
	assert.Equal(t, plusLine, concatText(plus[0]))

	// The edit at byte 10 falls outside the 5-grapheme alignment prefix,
	// so it surfaces only as part of the unedited tail, not as a
	// Deletion/Insertion span.
	for _, a := range minus[0] {
		assert.NotEqual(t, Deletion, a.Op)
	}
	for _, a := range plus[0] {
		assert.NotEqual(t, Insertion, a.Op)
	}
}

func concatText(line AnnotatedLine) string {
	var s string
	for _, a := range line {
		s += a.Text
	}
	return s
}

func assertConsistentPairs(t *testing.T, minus, plus []AnnotatedLine) {
	t.Helper()
	for i := range minus {
		minusTotal, minusDelta := summarize(minus[i])
		plusTotal, plusDelta := summarize(plus[i])
		assert.Equal(t, minusTotal-minusDelta, plusTotal-plusDelta, "inconsistent edits at pair %d", i)
	}
}

func summarize(line AnnotatedLine) (total, delta int) {
	for _, a := range line {
		n := len([]rune(a.Text))
		total += n
		if a.Op == Deletion || a.Op == Insertion {
			delta += n
		}
	}
	return
}
