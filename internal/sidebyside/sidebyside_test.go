package sidebyside

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibro45/diffpaint/internal/ansiscan"
	"github.com/ibro45/diffpaint/internal/style"
)

func opts(width, wrapMax int) Options {
	red, _ := style.Parse("red")
	return Options{ColumnWidth: width, WrapMaxLines: wrapMax, WrapStyle: red}
}

func TestLayoutPadsShortLinesToColumnWidth(t *testing.T) {
	out := Layout([]string{"abc"}, []string{"xy"}, opts(5, 3))
	assert.Len(t, out, 1)
	assert.Equal(t, "abc  "+separator+"xy   ", out[0])
}

func TestLayoutPadsMissingOppositeSide(t *testing.T) {
	out := Layout([]string{"abc"}, nil, opts(3, 3))
	assert.Len(t, out, 1)
	assert.Equal(t, "abc"+separator+"   ", out[0])
}

func TestLayoutPreservesStyleAcrossWrap(t *testing.T) {
	painted := style.Style{Bold: true}.Paint("abcdef")
	out := Layout([]string{painted}, nil, opts(3, 3))
	require.Len(t, out, 2)
	assert.True(t, strings.HasPrefix(ansiscan.Strip(out[0]), "abc"))
	assert.True(t, strings.HasPrefix(ansiscan.Strip(out[1]), "def"))
	assert.Contains(t, out[0], "\x1b[1m")
	assert.Contains(t, out[1], "\x1b[1m")
}

func TestLayoutTruncatesBeyondWrapMaxLines(t *testing.T) {
	out := Layout([]string{"abcdefghi"}, nil, opts(3, 1))
	// 9 cells at width 3 needs 3 rows; capped to WrapMaxLines+1 = 2.
	assert.Len(t, out, 2)
	assert.Contains(t, ansiscan.Strip(out[1]), "…")
}

func TestLayoutMultipleRowsZipIndependently(t *testing.T) {
	out := Layout([]string{"aa", "bb"}, []string{"11", "22"}, opts(2, 3))
	assert.Len(t, out, 2)
	assert.Equal(t, "aa"+separator+"11", out[0])
	assert.Equal(t, "bb"+separator+"22", out[1])
}

func TestColumnWidthFromTerminalReservesSeparator(t *testing.T) {
	w := ColumnWidthFromTerminal(20)
	assert.Equal(t, (20-len(separator))/2, w)
}

func TestColumnWidthFromTerminalNeverBelowOne(t *testing.T) {
	assert.Equal(t, 1, ColumnWidthFromTerminal(0))
}
