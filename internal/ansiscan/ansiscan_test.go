package ansiscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanPlainText(t *testing.T) {
	spans := Scan("hello")
	if assert.Len(t, spans, 1) {
		assert.Equal(t, "hello", spans[0].Text)
		assert.True(t, spans[0].Style.IsZero())
	}
}

func TestScanSingleSGRRun(t *testing.T) {
	spans := Scan("\x1b[31mred text\x1b[0m")
	if assert.Len(t, spans, 1) {
		assert.Equal(t, "red text", spans[0].Text)
		assert.False(t, spans[0].Style.IsZero())
	}
}

func TestScanMultipleRuns(t *testing.T) {
	spans := Scan("\x1b[31mred\x1b[0m\x1b[32mgreen\x1b[0m")
	if assert.Len(t, spans, 2) {
		assert.Equal(t, "red", spans[0].Text)
		assert.Equal(t, "green", spans[1].Text)
	}
}

func TestScanRGBColor(t *testing.T) {
	spans := Scan("\x1b[38;2;255;0;0mred\x1b[0m")
	require := assert.New(t)
	require.Len(spans, 1)
	require.Equal("red", spans[0].Text)
}

func TestScan256Color(t *testing.T) {
	spans := Scan("\x1b[38;5;124mtext\x1b[0m")
	assert.Len(t, spans, 1)
	assert.Equal(t, "text", spans[0].Text)
}

func TestScanDropsNonSGRCSI(t *testing.T) {
	spans := Scan("a\x1b[2Kb")
	got := ""
	for _, s := range spans {
		got += s.Text
	}
	assert.Equal(t, "ab", got)
}

func TestScanDropsOSC(t *testing.T) {
	spans := Scan("a\x1b]0;title\x07b")
	got := ""
	for _, s := range spans {
		got += s.Text
	}
	assert.Equal(t, "ab", got)
}

func TestStripRoundTrip(t *testing.T) {
	assert.Equal(t, "plain line", Strip("plain line"))
	assert.Equal(t, "colored", Strip("\x1b[31mcolored\x1b[0m"))
}

func TestMeasureWidthIgnoresEscapes(t *testing.T) {
	assert.Equal(t, 5, MeasureWidth("\x1b[31mhello\x1b[0m"))
}

func TestMeasureWidthWideRunes(t *testing.T) {
	assert.Equal(t, 4, MeasureWidth("\x1b[31m中文\x1b[0m"))
}
