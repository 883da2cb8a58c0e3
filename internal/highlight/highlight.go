// Package highlight adapts chroma's lexer/style registry into the
// Highlighter collaborator: given a language and a chunk of text it
// returns style spans over byte ranges, for the painter to composite
// with edit-emphasis and structural styling. It deliberately does not
// use chroma's own terminal formatter, since that renders directly to
// ANSI text and the painter needs the underlying (Style, byteRange)
// pairs before any other layer is applied.
package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/ibro45/diffpaint/internal/style"
)

// Span is one maximal run of text chroma assigned a single token type,
// translated to a resolved Style, over [Start, End) byte offsets into
// the text that was highlighted.
type Span struct {
	Style      style.Style
	Start, End int
}

// Highlighter is the external syntax-highlighting collaborator spec.md
// names: given a language tag and a line or block of code, it returns
// the style spans covering it.
type Highlighter interface {
	Highlight(language, text string) []Span
}

// Chroma is the chroma/v2-backed Highlighter implementation.
type Chroma struct {
	theme *chroma.Style
}

// New builds a Chroma highlighter using the named chroma style/theme,
// falling back to a built-in theme if the name isn't registered.
func New(themeName string) *Chroma {
	theme := styles.Get(themeName)
	if theme == nil {
		theme = styles.Fallback
	}
	return &Chroma{theme: theme}
}

// Highlight tokenizes text with the lexer registered for language
// (falling back to a plain-text lexer when the language is empty or
// unrecognized) and returns one Span per token, in source order.
func (h *Chroma) Highlight(language, text string) []Span {
	if text == "" {
		return nil
	}
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	var spans []Span
	offset := 0
	for _, tok := range iterator.Tokens() {
		entry := h.theme.Get(tok.Type)
		spans = append(spans, Span{
			Style: styleFromEntry(entry),
			Start: offset,
			End:   offset + len(tok.Value),
		})
		offset += len(tok.Value)
	}
	return spans
}

func styleFromEntry(e chroma.StyleEntry) style.Style {
	var s style.Style
	s.IsSyntaxHighlighted = true
	if e.Colour.IsSet() {
		s.Foreground = style.RGBColor(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue())
	}
	if e.Background.IsSet() {
		s.Background = style.RGBColor(e.Background.Red(), e.Background.Green(), e.Background.Blue())
	}
	if e.Bold == chroma.Yes {
		s.Bold = true
	}
	if e.Italic == chroma.Yes {
		s.Italic = true
	}
	if e.Underline == chroma.Yes {
		s.Underline = true
	}
	return s
}

// extensionLanguages maps common file extensions to chroma lexer names,
// for when a hunk header or file-meta line only gives us a path.
var extensionLanguages = map[string]string{
	"go": "go", "py": "python", "js": "javascript", "mjs": "javascript",
	"ts": "typescript", "tsx": "tsx", "jsx": "jsx",
	"rs": "rust", "c": "c", "h": "c", "cpp": "cpp", "hpp": "cpp", "cc": "cpp",
	"java": "java", "kt": "kotlin", "swift": "swift",
	"sh": "bash", "bash": "bash", "zsh": "bash", "fish": "fish",
	"yaml": "yaml", "yml": "yaml", "json": "json", "toml": "toml",
	"xml": "xml", "html": "html", "css": "css", "scss": "scss", "sql": "sql",
	"md": "markdown", "markdown": "markdown", "rb": "ruby", "php": "php",
	"lua": "lua", "r": "r", "scala": "scala",
	"clj": "clojure", "cljs": "clojure",
	"ex": "elixir", "exs": "elixir", "erl": "erlang", "hrl": "erlang",
	"dart": "dart", "vue": "vue", "svelte": "svelte",
}

// DetectLanguage maps a file path's extension to a chroma lexer name,
// returning "" when no mapping is known.
func DetectLanguage(filePath string) string {
	dot := -1
	for i := len(filePath) - 1; i >= 0; i-- {
		if filePath[i] == '.' {
			dot = i
			break
		}
		if filePath[i] == '/' {
			break
		}
	}
	if dot < 0 {
		return ""
	}
	ext := filePath[dot+1:]
	return extensionLanguages[lower(ext)]
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
