package style

// DefaultTheme holds the default minus/plus background colors for one
// light/dark x true-color/256-color combination, ported from the
// original's hard-coded RGB and 256-indexed constants.
type DefaultTheme struct {
	MinusBackground      Color
	MinusEmphBackground  Color
	PlusBackground       Color
	PlusEmphBackground   Color
}

var (
	lightTrueColor = DefaultTheme{
		MinusBackground:     RGBColor(0xff, 0xe0, 0xe0),
		MinusEmphBackground: RGBColor(0xff, 0xc0, 0xc0),
		PlusBackground:      RGBColor(0xd0, 0xff, 0xd0),
		PlusEmphBackground:  RGBColor(0xa0, 0xef, 0xa0),
	}
	light256 = DefaultTheme{
		MinusBackground:     IndexedColor(224),
		MinusEmphBackground: IndexedColor(217),
		PlusBackground:      IndexedColor(194),
		PlusEmphBackground:  IndexedColor(157),
	}
	darkTrueColor = DefaultTheme{
		MinusBackground:     RGBColor(0x3f, 0x00, 0x01),
		MinusEmphBackground: RGBColor(0x90, 0x10, 0x11),
		PlusBackground:      RGBColor(0x00, 0x28, 0x00),
		PlusEmphBackground:  RGBColor(0x00, 0x60, 0x00),
	}
	dark256 = DefaultTheme{
		MinusBackground:     IndexedColor(52),
		MinusEmphBackground: IndexedColor(124),
		PlusBackground:      IndexedColor(22),
		PlusEmphBackground:  IndexedColor(28),
	}
)

// DefaultThemeFor selects the built-in minus/plus palette for the given
// light-mode/true-color combination.
func DefaultThemeFor(isLightMode, isTrueColor bool) DefaultTheme {
	switch {
	case isLightMode && isTrueColor:
		return lightTrueColor
	case isLightMode && !isTrueColor:
		return light256
	case !isLightMode && isTrueColor:
		return darkTrueColor
	default:
		return dark256
	}
}

// DefaultBlamePalette is a cycling blame color list, expressed as style
// tokens parseable by Parse. The blame-palette default in internal/config
// lists the same colors but does not read this variable.
var DefaultBlamePalette = []string{
	"red", "blue", "green", "yellow", "magenta", "cyan",
}
