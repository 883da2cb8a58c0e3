// Package gwidth measures the terminal-cell width of text and splits text
// into grapheme clusters.
//
// Alignment (internal/align), the format-string engine (internal/format),
// and the side-by-side layout (internal/sidebyside) all need to reason in
// terminal cells rather than bytes or runes, and the Alignment table is
// explicitly grapheme-indexed (not rune-indexed), so this package is the
// single place that owns both concerns.
package gwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Graphemes splits s into grapheme clusters, each returned as its own
// string. Concatenating the result yields s unchanged.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// Width returns the terminal-cell width of s, respecting East-Asian wide
// runes within each grapheme cluster.
func Width(s string) int {
	width := 0
	for _, g := range Graphemes(s) {
		width += clusterWidth(g)
	}
	return width
}

// clusterWidth returns the display width of a single grapheme cluster: the
// width of its first rune. Combining marks and zero-width joiners that
// follow contribute no additional width.
func clusterWidth(cluster string) int {
	for _, r := range cluster {
		return runewidth.RuneWidth(r)
	}
	return 0
}

// Truncate returns the longest prefix of s whose width does not exceed
// width, measured in graphemes (not bytes).
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	graphemes := Graphemes(s)
	w := 0
	var out []string
	for _, g := range graphemes {
		gw := clusterWidth(g)
		if w+gw > width {
			break
		}
		w += gw
		out = append(out, g)
	}
	result := ""
	for _, g := range out {
		result += g
	}
	return result
}

// TruncateGraphemeCount returns the prefix of s made up of at most n
// grapheme clusters, counting clusters rather than display width (unlike
// Truncate, which bounds width).
func TruncateGraphemeCount(s string, n int) string {
	if n <= 0 {
		return ""
	}
	graphemes := Graphemes(s)
	if len(graphemes) <= n {
		return s
	}
	var b strings.Builder
	for _, g := range graphemes[:n] {
		b.WriteString(g)
	}
	return b.String()
}
