// Package config resolves a diffpaint run's options into the fully
// resolved, read-only [Config] the rendering pipeline consumes: YAML
// file + environment variables (via Viper), feature bundles expanded by
// DFS, and style references resolved by DFS, both with cycle detection.
package config

// Config is the fully-resolved, read-only result of option resolution.
type Config struct {
	// Styles maps a style role name ("minus-style", "plus-style",
	// "commit-style", "blame-code-style", ...) to a raw style string,
	// which may itself be a reference to another role (ResolveStyles
	// follows those references before the result reaches internal/style).
	Styles map[string]string `mapstructure:"styles"`

	// Features is the set of named feature bundles enabled for this
	// run (each may itself pull in other features, see features.go),
	// e.g. "diff-so-fancy", "line-numbers", "diff-highlight".
	Features []string `mapstructure:"features"`

	// FeatureBundles is the full named-bundle table: each bundle maps
	// setting keys to values, overlaid in dependency order.
	FeatureBundles map[string]map[string]any `mapstructure:"feature-bundles"`

	ShowLineNumbers             bool    `mapstructure:"line-numbers"`
	LineNumberFormat            string  `mapstructure:"line-numbers-format"`
	SideBySide                  bool    `mapstructure:"side-by-side"`
	SideBySideWidth             int     `mapstructure:"width"`
	WrapMaxLines                int     `mapstructure:"wrap-max-lines"`
	TabWidth                    int     `mapstructure:"tabs"`
	MaxLineDistance             float64 `mapstructure:"max-line-distance"`
	MaxLineLength               int     `mapstructure:"max-line-length"`
	ColorOnly                   bool    `mapstructure:"color-only"`
	KeepPlusMinusMarkers        bool    `mapstructure:"keep-plus-minus-markers"`
	HighlightTrailingWhitespace bool    `mapstructure:"whitespace-error-style-enabled"`
	DefaultLanguage             string  `mapstructure:"default-language"`
	SyntaxTheme                 string  `mapstructure:"syntax-theme"`
	TrueColor                   bool    `mapstructure:"true-color"`

	BlamePalette         []string `mapstructure:"blame-palette"`
	BlameFormat          string   `mapstructure:"blame-format"`
	BlameTimestampFormat string   `mapstructure:"blame-timestamp-format"`

	HunkHeaderFormat string `mapstructure:"hunk-header-style-format"`
}

// DefaultConfig returns the built-in option tier that Viper-loaded
// values and feature bundles overlay on top of.
func DefaultConfig() *Config {
	return &Config{
		Styles: map[string]string{
			"minus-style":                   "red",
			"minus-emph-style":              "reverse red",
			"minus-empty-line-marker-style": "reverse red",
			"plus-style":                    "green",
			"plus-emph-style":               "reverse green",
			"plus-empty-line-marker-style":  "reverse green",
			"commit-style":                  "raw",
			"file-style":                    "bold",
			"hunk-header-style":             "blue",
			"line-number-style":             "cyan",
			"whitespace-error-style":        "reverse yellow",
			"blame-code-style":              "syntax",
			"zero-style":                    "normal",
			"wrap-symbol-style":             "dim",
		},
		Features:       nil,
		FeatureBundles: map[string]map[string]any{},

		ShowLineNumbers:             false,
		LineNumberFormat:            "{nm:>4}│{np:>4}│",
		SideBySide:                  false,
		SideBySideWidth:             0,
		WrapMaxLines:                3,
		TabWidth:                    4,
		MaxLineDistance:             0.6,
		MaxLineLength:               512,
		ColorOnly:                   false,
		KeepPlusMinusMarkers:        false,
		HighlightTrailingWhitespace: true,
		DefaultLanguage:             "",
		SyntaxTheme:                 "github-dark",
		TrueColor:                   true,

		BlamePalette:         []string{"red", "blue", "green", "yellow", "magenta", "cyan"},
		BlameFormat:          "{timestamp:<15} {author:<20} {commit:<8}",
		BlameTimestampFormat: "2006-01-02 15:04:05 -0700",

		HunkHeaderFormat: "{file} {line-number} {syntax}",
	}
}
