package render

import (
	"math"
	"strconv"

	"tinygo.org/x/tinyfont"

	"github.com/PriyathamGoroju/graphing/graph/expr"
	"github.com/PriyathamGoroju/graphing/graph/sample"
	"github.com/PriyathamGoroju/graphing/graph/scene"
	"github.com/PriyathamGoroju/graphing/graph/tangent"
	"github.com/PriyathamGoroju/graphing/graph/viewport"
)

const (
	// maxCurveSamples bounds the sampling density to this many steps across the view.
	maxCurveSamples = 800

	labelGap      = 4 // distance between an axis and its labels
	markerRadius  = 4
	captionOffset = 8
)

// Renderer draws scenes. The zero value uses DefaultFont at scale 1.
type Renderer struct {
	Font tinyfont.Fonter
	// Scale is the number of device pixels per logical pixel.
	Scale float64
}

// Stats describes one render pass.
type Stats struct {
	Curves   int
	Points   int
	Segments int
	Labels   int
	Culled   int
}

// frame is the per-pass geometry shared by the drawing steps.
type frame struct {
	size  viewport.Size
	b     viewport.Bounds
	scale float64
	ppu   float64 // device pixels per graph unit
	step  float64
	axis  viewport.Point
	pal   scene.Palette
}

func (f *frame) px(p viewport.Point) viewport.Point {
	return viewport.GraphToPixel(p, f.b, f.size)
}

func (r Renderer) scale() float64 {
	if !(r.Scale > 0) || math.IsInf(r.Scale, 0) {
		return 1
	}
	return r.Scale
}

// Render paints s onto c. tp, when not nil, is drawn as the tangent overlay.
// Equations that fail to compile are skipped.
func (r Renderer) Render(c *Canvas, s scene.Scene, tp *tangent.Point) Stats {
	var st Stats
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return st
	}

	f := &frame{
		size:  viewport.Size{W: int(w), H: int(h)},
		scale: r.scale(),
		pal:   s.Theme.Palette(),
	}
	f.b = viewport.ComputeBounds(s.Viewport, f.size)
	f.ppu = f.b.PixelsPerUnit(f.size)
	f.step = viewport.TickStep(s.Viewport.Zoom(), f.ppu/f.scale, viewport.MinLabelSpacing)
	f.axis = f.px(viewport.Point{})

	c.Fill(f.pal.Background)
	if s.Grid {
		r.drawGrid(c, f)
	}
	r.drawAxes(c, f)
	r.drawLabels(c, f, &st)
	for _, eq := range s.Visible() {
		r.drawCurve(c, f, eq, &st)
	}
	if tp != nil {
		r.drawTangent(c, f, *tp)
	}
	return st
}

func (r Renderer) drawGrid(c *Canvas, f *frame) {
	lw := maxInt(1, roundInt(f.scale))
	for _, x := range viewport.Ticks(f.b.XMin, f.b.XMax, f.step) {
		px := roundInt(f.px(viewport.Point{X: x}).X) - lw/2
		c.fillRect(px, 0, px+lw, f.size.H, f.pal.Grid)
	}
	for _, y := range viewport.Ticks(f.b.YMin, f.b.YMax, f.step) {
		py := roundInt(f.px(viewport.Point{Y: y}).Y) - lw/2
		c.fillRect(0, py, f.size.W, py+lw, f.pal.Grid)
	}
}

func (r Renderer) drawAxes(c *Canvas, f *frame) {
	lw := maxInt(1, roundInt(1.5*f.scale))
	if f.b.XMin <= 0 && f.b.XMax >= 0 {
		px := roundInt(f.axis.X) - lw/2
		c.fillRect(px, 0, px+lw, f.size.H, f.pal.Axis)
	}
	if f.b.YMin <= 0 && f.b.YMax >= 0 {
		py := roundInt(f.axis.Y) - lw/2
		c.fillRect(0, py, f.size.W, py+lw, f.pal.Axis)
	}
}

// drawLabels writes tick values along both axes. A label is culled when the
// spacing between ticks cannot hold it plus padding, or when it would run into
// the label drawn before it. Labels of an off-screen axis stay on the nearest edge.
func (r Renderer) drawLabels(c *Canvas, f *frame, st *Stats) {
	pad := viewport.LabelPadding * f.scale
	gap := f.step * f.ppu
	gapAt := labelGap * roundInt(f.scale)
	th := r.textHeight()

	top := clampInt(roundInt(f.axis.Y)+gapAt, 0, f.size.H-th)
	lastRight := math.Inf(-1)
	for _, x := range viewport.Ticks(f.b.XMin, f.b.XMax, f.step) {
		label := formatTick(x, f.step)
		tw := r.textWidth(label)
		if !viewport.ShowLabel(gap, float64(tw), pad) {
			st.Culled++
			continue
		}
		left := clampInt(roundInt(f.px(viewport.Point{X: x}).X)-tw/2, 0, f.size.W-tw)
		if float64(left) < lastRight+pad {
			st.Culled++
			continue
		}
		r.drawText(c, left, top, label, f.pal.Text)
		lastRight = float64(left + tw)
		st.Labels++
	}

	ys := viewport.Ticks(f.b.YMin, f.b.YMax, f.step)
	lastBottom := math.Inf(-1)
	for i := len(ys) - 1; i >= 0; i-- {
		y := ys[i]
		if y == 0 {
			continue
		}
		label := formatTick(y, f.step)
		tw := r.textWidth(label)
		if !viewport.ShowLabel(gap, float64(th), pad) {
			st.Culled++
			continue
		}
		ly := roundInt(f.px(viewport.Point{Y: y}).Y) - th/2
		if ly < 0 || ly+th > f.size.H {
			continue
		}
		if float64(ly) < lastBottom+pad {
			st.Culled++
			continue
		}
		left := clampInt(roundInt(f.axis.X)-gapAt-tw, 0, f.size.W-tw)
		r.drawText(c, left, ly, label, f.pal.Text)
		lastBottom = float64(ly + th)
		st.Labels++
	}
}

func (r Renderer) drawCurve(c *Canvas, f *frame, eq scene.Equation, st *Stats) {
	e, err := expr.Compile(eq.Expression)
	if err != nil {
		return
	}
	n := math.Min(float64(f.size.W)/f.scale, maxCurveSamples)
	if n < 1 {
		n = 1
	}
	points := sample.Generate(e, f.b.XMin, f.b.XMax, f.b.Width()/n)
	st.Curves++
	st.Points += len(points)

	width := eq.LineWidth
	if !(width > 0) {
		width = scene.DefaultLineWidth
	}
	p := newPen(c, eq.Color, width*f.scale, eq.LineStyle)
	for _, seg := range sample.Segments(points) {
		st.Segments++
		p.reset()
		prev := f.px(viewport.Point(seg[0]))
		if len(seg) == 1 {
			p.dot(roundInt(prev.X), roundInt(prev.Y))
			continue
		}
		for _, pt := range seg[1:] {
			cur := f.px(viewport.Point(pt))
			p.line(prev.X, prev.Y, cur.X, cur.Y)
			prev = cur
		}
	}
}

func (r Renderer) drawTangent(c *Canvas, f *frame, tp tangent.Point) {
	a, b := tangent.Line(tp, f.b)
	pa, pb := f.px(a), f.px(b)
	p := newPen(c, tp.Color, 1.5*f.scale, scene.LineDashed)
	p.line(pa.X, pa.Y, pb.X, pb.Y)

	at := f.px(viewport.Point{X: tp.X, Y: tp.Y})
	ax, ay := roundInt(at.X), roundInt(at.Y)
	fillCircle(c, ax, ay, roundInt(markerRadius*f.scale), tp.Color)

	caption := "x=" + formatValue(tp.X) + " y=" + formatValue(tp.Y) + " m=" + formatValue(tp.Slope)
	tw, th := r.textWidth(caption), r.textHeight()
	off := roundInt(captionOffset * f.scale)
	left := clampInt(ax+off, 0, f.size.W-tw)
	top := clampInt(ay-off-th, 0, f.size.H-th)
	c.fillRect(left-2, top-1, left+tw+2, top+th+1, f.pal.Background)
	r.drawText(c, left, top, caption, f.pal.Text)
}

// formatTick prints a tick value with as many decimals as the step needs.
func formatTick(v, step float64) string {
	if math.Abs(v) < step*1e-9 {
		return "0"
	}
	av := math.Abs(v)
	if av >= 1e6 || av < 1e-4 {
		return strconv.FormatFloat(v, 'g', 3, 64)
	}
	dec := 0
	if step < 1 {
		dec = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	return strconv.FormatFloat(v, 'f', dec, 64)
}

func formatValue(v float64) string {
	if math.Abs(v) >= 1e6 {
		return strconv.FormatFloat(v, 'g', 4, 64)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
