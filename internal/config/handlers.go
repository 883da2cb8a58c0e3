package config

import (
	"io"

	"github.com/ibro45/diffpaint/internal/handlers"
	"github.com/ibro45/diffpaint/internal/highlight"
	"github.com/ibro45/diffpaint/internal/linenumbers"
	"github.com/ibro45/diffpaint/internal/sidebyside"
	"github.com/ibro45/diffpaint/internal/style"
)

// BuildHandlers resolves cfg's style table and wires it, along with a
// chroma-backed highlighter, into a ready-to-use handlers.Handlers
// writing to w.
func BuildHandlers(cfg *Config, w io.Writer) (*handlers.Handlers, error) {
	styles, err := ResolveStyles(cfg.Styles)
	if err != nil {
		return nil, err
	}

	hcfg := &handlers.Config{
		Styles: handlers.Styles{
			CommitMeta:       styles["commit-style"],
			FileMeta:         styles["file-style"],
			HunkHeader:       styles["hunk-header-style"],
			HunkHeaderCode:   styleOrFallback(styles, "hunk-header-code-style", "hunk-header-style"),
			Minus:            styles["minus-style"],
			MinusEmph:        styles["minus-emph-style"],
			MinusEmptyMarker: styles["minus-empty-line-marker-style"],
			Plus:             styles["plus-style"],
			PlusEmph:         styles["plus-emph-style"],
			PlusEmptyMarker:  styles["plus-empty-line-marker-style"],
			Context:          styles["zero-style"],
			WhitespaceError:  styles["whitespace-error-style"],
			LineNumber:       styles["line-number-style"],
			Blame:            styles["blame-code-style"],
			WrapSymbol:       styles["wrap-symbol-style"],
		},
		Highlighter:                 highlight.New(cfg.SyntaxTheme),
		Language:                    cfg.DefaultLanguage,
		ShowLineNumbers:             cfg.ShowLineNumbers,
		LineNumberFormat:            linenumbers.ParseFormat(cfg.LineNumberFormat, false),
		DistanceThreshold:           cfg.MaxLineDistance,
		MaxLineLength:               cfg.MaxLineLength,
		ColorOnly:                   cfg.ColorOnly,
		KeepPlusMinusMarkers:        cfg.KeepPlusMinusMarkers,
		HighlightTrailingWhitespace: cfg.HighlightTrailingWhitespace,
		BlamePalette:                cfg.BlamePalette,
		BlameFormat:                 handlers.ParseBlameFormat(cfg.BlameFormat),
		BlameTimestampFormat:        cfg.BlameTimestampFormat,
		SideBySide:                  cfg.SideBySide,
		ColumnWidth:                 sidebyside.ColumnWidthFromTerminal(cfg.SideBySideWidth),
		WrapMaxLines:                cfg.WrapMaxLines,
	}
	return handlers.New(hcfg, w), nil
}

func styleOrFallback(styles map[string]style.Style, key, fallbackKey string) style.Style {
	if s, ok := styles[key]; ok {
		return s
	}
	return styles[fallbackKey]
}
