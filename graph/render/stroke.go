package render

import (
	"image/color"
	"math"

	"github.com/PriyathamGoroju/graphing/graph/scene"
)

// pen strokes polylines with a square nib and an optional dash pattern.
// The dash phase runs on across the vertices of one polyline.
type pen struct {
	c       *Canvas
	col     color.RGBA
	nib     int
	pattern []float64
	period  float64
	dist    float64
}

func newPen(c *Canvas, col color.RGBA, width float64, style scene.LineStyle) *pen {
	nib := int(math.Round(width))
	if nib < 1 {
		nib = 1
	}
	p := &pen{c: c, col: col, nib: nib}
	for _, run := range style.Pattern() {
		p.pattern = append(p.pattern, run*float64(nib))
		p.period += run * float64(nib)
	}
	return p
}

// reset starts a new polyline.
func (p *pen) reset() { p.dist = 0 }

func (p *pen) inked() bool {
	if p.period <= 0 {
		return true
	}
	d := math.Mod(p.dist, p.period)
	for i, run := range p.pattern {
		if d < run {
			return i%2 == 0
		}
		d -= run
	}
	return false
}

func (p *pen) dot(x, y int) {
	x0 := x - p.nib/2
	y0 := y - p.nib/2
	p.c.fillRect(x0, y0, x0+p.nib, y0+p.nib, p.col)
}

// line strokes from (x0, y0) to (x1, y1) in device pixels.
func (p *pen) line(x0, y0, x1, y1 float64) {
	start := p.dist
	length := math.Hypot(x1-x0, y1-y0)
	defer func() { p.dist = start + length }()

	w, h := p.c.Size()
	m := float64(p.nib)
	cx0, cy0, cx1, cy1, ok := clipLineToRect(x0, y0, x1, y1, -m, -m, float64(w)-1+m, float64(h)-1+m)
	if !ok {
		return
	}
	p.dist += math.Hypot(cx0-x0, cy0-y0)

	ix0, iy0 := roundInt(cx0), roundInt(cy0)
	ix1, iy1 := roundInt(cx1), roundInt(cy1)
	dx := absInt(ix1 - ix0)
	dy := -absInt(iy1 - iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	err := dx + dy
	for {
		if p.inked() {
			p.dot(ix0, iy0)
		}
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * err
		moved := 0
		if e2 >= dy {
			err += dy
			ix0 += sx
			moved++
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
			moved++
		}
		if moved == 2 {
			p.dist += math.Sqrt2
		} else {
			p.dist++
		}
	}
}

func fillCircle(c *Canvas, cx, cy, r int, col color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		span := int(math.Sqrt(float64(r*r - dy*dy)))
		c.fillRect(cx-span, cy+dy, cx+span+1, cy+dy+1, col)
	}
}

// clipLineToRect clips a segment to an axis-aligned rectangle (Liang–Barsky).
func clipLineToRect(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	u1 := 0.0
	u2 := 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return 0, 0, 0, 0, false
			}
			u1 = math.Max(u1, t)
		} else {
			if t < u1 {
				return 0, 0, 0, 0, false
			}
			u2 = math.Min(u2, t)
		}
	}

	cx0 = clampFloat(x0+u1*dx, xmin, xmax)
	cy0 = clampFloat(y0+u1*dy, ymin, ymax)
	cx1 = clampFloat(x0+u2*dx, xmin, xmax)
	cy1 = clampFloat(y0+u2*dy, ymin, ymax)
	return cx0, cy0, cx1, cy1, true
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
