package render

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

var (
	_ drivers.Displayer = (*Canvas)(nil)
	_ drivers.Displayer = textPen{}
)

// Canvas is an RGBA raster that tinyfont and the curve pen draw on.
// It implements drivers.Displayer. Drawing outside the image is ignored.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas wraps img. The image is drawn in place.
func NewCanvas(img *image.RGBA) *Canvas {
	return &Canvas{img: img}
}

// Image returns the underlying image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (x, y int16) {
	if c == nil || c.img == nil {
		return 0, 0
	}
	r := c.img.Rect
	return int16(clampInt(r.Dx(), 0, maxCanvas)), int16(clampInt(r.Dy(), 0, maxCanvas))
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.fillRect(int(x), int(y), int(x)+1, int(y)+1, col)
}

func (c *Canvas) Display() error { return nil }

func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	c.fillRect(int(x), int(y), int(x)+int(width), int(y)+int(height), col)
	return nil
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.RGBA) {
	w, h := c.Size()
	c.fillRect(0, 0, int(w), int(h), col)
}

// RGBAAt returns the pixel at (x, y) relative to the canvas origin.
func (c *Canvas) RGBAAt(x, y int) color.RGBA {
	if c == nil || c.img == nil {
		return color.RGBA{}
	}
	return c.img.RGBAAt(c.img.Rect.Min.X+x, c.img.Rect.Min.Y+y)
}

// fillRect paints [x0, x1) × [y0, y1), clipped to the canvas.
func (c *Canvas) fillRect(x0, y0, x1, y1 int, col color.RGBA) {
	if c == nil || c.img == nil {
		return
	}
	w, h := c.Size()
	x0 = clampInt(x0, 0, int(w))
	y0 = clampInt(y0, 0, int(h))
	x1 = clampInt(x1, 0, int(w))
	y1 = clampInt(y1, 0, int(h))
	if x0 >= x1 || y0 >= y1 {
		return
	}

	o := c.img.Rect.Min
	for py := y0; py < y1; py++ {
		off := c.img.PixOffset(o.X+x0, o.Y+py)
		row := c.img.Pix[off : off+(x1-x0)*4 : off+(x1-x0)*4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = col.R
			row[i+1] = col.G
			row[i+2] = col.B
			row[i+3] = col.A
		}
	}
}

const maxCanvas = 1<<15 - 1

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
