package render

import (
	"image/color"
	"math"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultFont is used when a Renderer has no font set.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	fontAscent = 8
	fontHeight = 11
)

// textPen draws glyphs at an integer magnification. Each font pixel becomes a
// scale×scale block, placed relative to the text origin.
type textPen struct {
	c      *Canvas
	ox, oy int
	scale  int
}

func (p textPen) Size() (x, y int16) { return p.c.Size() }

func (p textPen) SetPixel(x, y int16, col color.RGBA) {
	px := p.ox + int(x)*p.scale
	py := p.oy + int(y)*p.scale
	p.c.fillRect(px, py, px+p.scale, py+p.scale, col)
}

func (p textPen) Display() error { return nil }

func (r Renderer) font() tinyfont.Fonter {
	if r.Font != nil {
		return r.Font
	}
	return DefaultFont
}

func (r Renderer) textScale() int {
	s := int(math.Round(r.scale()))
	if s < 1 {
		return 1
	}
	return s
}

// textWidth is the advance width of s in device pixels.
func (r Renderer) textWidth(s string) int {
	_, outbox := tinyfont.LineWidth(r.font(), s)
	return int(outbox) * r.textScale()
}

// textHeight is the line height in device pixels.
func (r Renderer) textHeight() int {
	return fontHeight * r.textScale()
}

// drawText writes s with its top-left corner at (x, y).
func (r Renderer) drawText(c *Canvas, x, y int, s string, col color.RGBA) {
	if s == "" {
		return
	}
	tinyfont.WriteLine(textPen{c: c, ox: x, oy: y, scale: r.textScale()}, r.font(), 0, fontAscent, s, col)
}
