package handlers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHunkHeaderWithCounts(t *testing.T) {
	h, ok := ParseHunkHeader("@@ -10,5 +20,7 @@ func main() {")
	require.True(t, ok)
	assert.Equal(t, 10, h.OldStart)
	assert.Equal(t, 5, h.OldCount)
	assert.Equal(t, 20, h.NewStart)
	assert.Equal(t, 7, h.NewCount)
	assert.Equal(t, "func main() {", h.Fragment)
}

func TestParseHunkHeaderOmittedCountsDefaultToOne(t *testing.T) {
	h, ok := ParseHunkHeader("@@ -1 +1 @@")
	require.True(t, ok)
	assert.Equal(t, 1, h.OldCount)
	assert.Equal(t, 1, h.NewCount)
	assert.Equal(t, "", h.Fragment)
}

func TestParseHunkHeaderRejectsNonHeader(t *testing.T) {
	_, ok := ParseHunkHeader("not a hunk header")
	assert.False(t, ok)
}

func TestMaxLineNumberWidth(t *testing.T) {
	h, _ := ParseHunkHeader("@@ -1,9 +95,5 @@")
	assert.Equal(t, 2, h.MaxLineNumberWidth())
}

func TestHandleHunkHeaderWritesMarkerAndFragment(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{}
	h := New(cfg, &buf)

	err := h.HandleHunkHeader("@@ -1,3 +1,4 @@ func main() {")
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "@@ -1,3 +1,4 @@")
	assert.Contains(t, out, "func main() {")
	assert.Equal(t, 1, h.counters.Minus)
	assert.Equal(t, 1, h.counters.Plus)
}

func TestHandleHunkHeaderFallsBackToPassThrough(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{}
	h := New(cfg, &buf)

	err := h.HandleHunkHeader("@@ garbage")
	require.NoError(t, err)
	assert.Equal(t, "@@ garbage\n", buf.String())
}
