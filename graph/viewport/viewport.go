// Package viewport maps between graph space and canvas pixels.
//
// A Viewport is a center point plus a zoom factor. The visible width is BaseWidth/zoom
// graph units and the visible height follows the canvas aspect ratio, so one graph unit
// is always the same number of pixels on both axes. Bounds are derived on every render
// and never stored.
package viewport

import "math"

const (
	MinZoom = 0.5
	MaxZoom = 2.0

	// BaseWidth is the visible width in graph units at zoom 1.
	BaseWidth = 20.0
)

// Point is a position in either graph or pixel space; the caller knows which.
type Point struct {
	X float64
	Y float64
}

// Size is a canvas size in pixels.
type Size struct {
	W int
	H int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// Viewport is the visible region of the graph. The zero value is the default view.
type Viewport struct {
	Center Point
	zoom   float64
}

// New returns a viewport centered on center with zoom clamped to [MinZoom, MaxZoom].
func New(center Point, zoom float64) Viewport {
	return Viewport{Center: center, zoom: ClampZoom(zoom)}
}

// Default returns the view centered on the origin at zoom 1.
func Default() Viewport { return New(Point{}, 1) }

// ClampZoom limits z to [MinZoom, MaxZoom]. NaN maps to 1.
func ClampZoom(z float64) float64 {
	switch {
	case math.IsNaN(z):
		return 1
	case z < MinZoom:
		return MinZoom
	case z > MaxZoom:
		return MaxZoom
	default:
		return z
	}
}

// Zoom returns the zoom factor. A zero Viewport reports 1.
func (v Viewport) Zoom() float64 {
	if v.zoom == 0 {
		return 1
	}
	return v.zoom
}

// WithZoom returns v with the zoom replaced and clamped.
func (v Viewport) WithZoom(z float64) Viewport {
	v.zoom = ClampZoom(z)
	return v
}

// ZoomBy multiplies the zoom by factor around the center. factor > 1 zooms in.
func (v Viewport) ZoomBy(factor float64) Viewport {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return v
	}
	return v.WithZoom(v.Zoom() * factor)
}

// ZoomAt zooms by factor while keeping the graph point under the pixel anchor fixed.
// When the zoom is already at its limit the view is unchanged.
func (v Viewport) ZoomAt(factor float64, anchor Point, size Size) Viewport {
	if !size.Valid() {
		return v.ZoomBy(factor)
	}
	g := PixelToGraph(anchor, ComputeBounds(v, size), size)
	nv := v.ZoomBy(factor)
	if nv.Zoom() == v.Zoom() {
		return v
	}
	nb := ComputeBounds(nv, size)
	fx := anchor.X / float64(size.W)
	fy := anchor.Y / float64(size.H)
	nv.Center = Point{
		X: g.X - (fx-0.5)*nb.Width(),
		Y: g.Y + (fy-0.5)*nb.Height(),
	}
	return nv
}

// Pan moves the view by a pixel drag of (dx, dy). Content follows the pointer: the graph
// point under the cursor when the drag started stays under it. Zoom is unchanged.
func (v Viewport) Pan(dx, dy float64, size Size) Viewport {
	if size.W <= 0 {
		return v
	}
	u := BaseWidth / v.Zoom() / float64(size.W)
	v.Center.X -= dx * u
	v.Center.Y += dy * u
	return v
}

// PanFraction moves the view by fractions of its visible width and height.
// Positive fx moves right, positive fy moves up.
func (v Viewport) PanFraction(fx, fy float64, size Size) Viewport {
	b := ComputeBounds(v, size)
	v.Center.X += fx * b.Width()
	v.Center.Y += fy * b.Height()
	return v
}

// Bounds is the graph-space rectangle visible on the canvas.
type Bounds struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

func (b Bounds) Width() float64  { return b.XMax - b.XMin }
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

// PixelsPerUnit is the horizontal scale of b on a canvas of the given size.
func (b Bounds) PixelsPerUnit(size Size) float64 {
	w := b.Width()
	if w <= 0 || size.W <= 0 {
		return 0
	}
	return float64(size.W) / w
}

// ComputeBounds derives the visible rectangle for v on a canvas of the given size.
// An empty canvas is treated as square.
func ComputeBounds(v Viewport, size Size) Bounds {
	w := BaseWidth / v.Zoom()
	h := w
	if size.Valid() {
		h = w * float64(size.H) / float64(size.W)
	}
	return Bounds{
		XMin: v.Center.X - w/2,
		XMax: v.Center.X + w/2,
		YMin: v.Center.Y - h/2,
		YMax: v.Center.Y + h/2,
	}
}

// Bounds is ComputeBounds(v, size).
func (v Viewport) Bounds(size Size) Bounds { return ComputeBounds(v, size) }

// GraphToPixel maps a graph point to canvas pixels. Pixel y grows downward.
func GraphToPixel(p Point, b Bounds, size Size) Point {
	return Point{
		X: (p.X - b.XMin) / b.Width() * float64(size.W),
		Y: (b.YMax - p.Y) / b.Height() * float64(size.H),
	}
}

// PixelToGraph is the inverse of GraphToPixel.
func PixelToGraph(p Point, b Bounds, size Size) Point {
	return Point{
		X: b.XMin + p.X/float64(size.W)*b.Width(),
		Y: b.YMax - p.Y/float64(size.H)*b.Height(),
	}
}
