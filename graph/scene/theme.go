package scene

import (
	"fmt"
	"image/color"
	"strings"
)

type Theme uint8

const (
	ThemeLight Theme = iota
	ThemeDark
	ThemeBlue

	themeCount
)

// Palette is the fixed four-colour set of a theme.
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA
	Axis       color.RGBA
	Text       color.RGBA
}

var palettes = [themeCount]Palette{
	ThemeLight: {
		Background: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Grid:       color.RGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 0xFF},
		Axis:       color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xFF},
		Text:       color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xFF},
	},
	ThemeDark: {
		Background: color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xFF},
		Grid:       color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xFF},
		Axis:       color.RGBA{R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF},
		Text:       color.RGBA{R: 0xF9, G: 0xFA, B: 0xFB, A: 0xFF},
	},
	ThemeBlue: {
		Background: color.RGBA{R: 0x0C, G: 0x1E, B: 0x3C, A: 0xFF},
		Grid:       color.RGBA{R: 0x1E, G: 0x3A, B: 0x66, A: 0xFF},
		Axis:       color.RGBA{R: 0x93, G: 0xC5, B: 0xFD, A: 0xFF},
		Text:       color.RGBA{R: 0xDB, G: 0xEA, B: 0xFE, A: 0xFF},
	},
}

var themeNames = [themeCount]string{
	ThemeLight: "light",
	ThemeDark:  "dark",
	ThemeBlue:  "blue",
}

// ParseTheme accepts "light", "dark" or "blue", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range themeNames {
		if name == s {
			return Theme(i), nil
		}
	}
	return ThemeLight, fmt.Errorf("unknown theme %q", s)
}

func (t Theme) String() string {
	if t >= themeCount {
		return fmt.Sprintf("Theme(%d)", uint8(t))
	}
	return themeNames[t]
}

// Next cycles light -> dark -> blue -> light.
func (t Theme) Next() Theme {
	return (t + 1) % themeCount
}

// Palette returns the colours of t. Unknown themes use the light palette.
func (t Theme) Palette() Palette {
	if t >= themeCount {
		return palettes[ThemeLight]
	}
	return palettes[t]
}

type LineStyle uint8

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
)

// ParseLineStyle accepts "solid", "dashed" or "dotted". The empty string is solid.
func ParseLineStyle(s string) (LineStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid":
		return LineSolid, nil
	case "dashed":
		return LineDashed, nil
	case "dotted":
		return LineDotted, nil
	default:
		return LineSolid, fmt.Errorf("unknown line style %q", s)
	}
}

func (s LineStyle) String() string {
	switch s {
	case LineSolid:
		return "solid"
	case LineDashed:
		return "dashed"
	case LineDotted:
		return "dotted"
	default:
		return fmt.Sprintf("LineStyle(%d)", uint8(s))
	}
}

// Pattern returns the on/off run lengths of the style in units of line width.
// A nil pattern is a solid stroke.
func (s LineStyle) Pattern() []float64 {
	switch s {
	case LineDashed:
		return []float64{4, 3}
	case LineDotted:
		return []float64{1, 2}
	default:
		return nil
	}
}
