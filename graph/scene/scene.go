// Package scene holds the inputs a host passes to the renderer on every pass.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/PriyathamGoroju/graphing/graph/viewport"
)

const DefaultLineWidth = 2

var ErrColor = errors.New("invalid color")

// DefaultColors is the cycle used for equations added without an explicit colour.
var DefaultColors = []color.RGBA{
	{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF},
	{R: 0xDC, G: 0x26, B: 0x26, A: 0xFF},
	{R: 0x16, G: 0xA3, B: 0x4A, A: 0xFF},
	{R: 0xD9, G: 0x77, B: 0x06, A: 0xFF},
	{R: 0x93, G: 0x33, B: 0xEA, A: 0xFF},
	{R: 0x08, G: 0x91, B: 0xB2, A: 0xFF},
}

// DefaultColor returns the i-th colour of the default cycle.
func DefaultColor(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return DefaultColors[i%len(DefaultColors)]
}

// Equation is one plotted expression and its display attributes.
type Equation struct {
	ID         string
	Expression string
	Color      color.RGBA
	Visible    bool
	LineWidth  float64
	LineStyle  LineStyle
}

// NewEquation returns a visible solid equation with a fresh ID.
func NewEquation(expression string, c color.RGBA) Equation {
	return Equation{
		ID:         uuid.NewString(),
		Expression: strings.TrimSpace(expression),
		Color:      c,
		Visible:    true,
		LineWidth:  DefaultLineWidth,
		LineStyle:  LineSolid,
	}
}

// Scene is everything one render pass consumes.
type Scene struct {
	Equations []Equation
	Viewport  viewport.Viewport
	Grid      bool
	Theme     Theme
}

// Default returns an empty scene with the grid on and the light theme.
func Default() Scene {
	return Scene{Viewport: viewport.Default(), Grid: true, Theme: ThemeLight}
}

// Visible returns the equations that should be drawn, in list order.
func (s Scene) Visible() []Equation {
	out := make([]Equation, 0, len(s.Equations))
	for _, eq := range s.Equations {
		if eq.Visible && strings.TrimSpace(eq.Expression) != "" {
			out = append(out, eq)
		}
	}
	return out
}

// Find returns the equation with the given ID.
func (s Scene) Find(id string) (Equation, bool) {
	for _, eq := range s.Equations {
		if eq.ID == id {
			return eq, true
		}
	}
	return Equation{}, false
}

// ParseHexColor parses "#rgb" or "#rrggbb". The leading '#' is optional.
// The "#rgba" and "#rrggbbaa" forms are accepted too; curves are always drawn opaque,
// so their alpha is dropped.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3, 4:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	case 8:
		h = h[:6]
	default:
		return color.RGBA{}, fmt.Errorf("%w %q", ErrColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// HexColor formats c as "#rrggbb".
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
