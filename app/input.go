package app

import (
	"math"

	"go.uber.org/zap"

	"github.com/PriyathamGoroju/graphing/graph/tangent"
	"github.com/PriyathamGoroju/graphing/graph/viewport"
	"github.com/PriyathamGoroju/graphing/hal"
)

const (
	panFraction = 0.1
	zoomStep    = 1.25
	// clickSlop is the pointer travel, in logical pixels, below which a press and
	// release count as a click rather than a drag.
	clickSlop = 4
)

type drag struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// HandleKey applies one keyboard event. Only presses are acted on.
func (p *Plotter) HandleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	size := p.size()
	vp := p.scene.Viewport

	switch ev.Code {
	case hal.KeyLeft:
		p.setViewport(vp.PanFraction(-panFraction, 0, size))
		return
	case hal.KeyRight:
		p.setViewport(vp.PanFraction(panFraction, 0, size))
		return
	case hal.KeyUp:
		p.setViewport(vp.PanFraction(0, panFraction, size))
		return
	case hal.KeyDown:
		p.setViewport(vp.PanFraction(0, -panFraction, size))
		return
	case hal.KeyPageUp:
		p.setViewport(vp.ZoomBy(zoomStep))
		return
	case hal.KeyPageDown:
		p.setViewport(vp.ZoomBy(1 / zoomStep))
		return
	case hal.KeyHome:
		p.setViewport(p.home)
		return
	case hal.KeyEscape:
		p.setTangent(nil)
		return
	}

	switch ev.Rune {
	case '+', '=':
		p.setViewport(vp.ZoomBy(zoomStep))
	case '-', '_':
		p.setViewport(vp.ZoomBy(1 / zoomStep))
	case '0':
		p.setViewport(p.home)
	case 'g', 'G':
		p.scene.Grid = !p.scene.Grid
		p.dirty = true
	case 't', 'T':
		p.scene.Theme = p.scene.Theme.Next()
		p.log.Debug("theme changed", zap.Stringer("theme", p.scene.Theme))
		p.dirty = true
	case 'p', 'P':
		if path, err := p.Snapshot(); err != nil {
			p.log.Error("snapshot failed", zap.Error(err))
		} else {
			p.log.Info("snapshot written", zap.String("path", path))
		}
	}
}

// HandlePointer applies one pointer event. Coordinates are framebuffer pixels.
//
// Dragging pans so that the content follows the pointer. A press and release that
// travel less than clickSlop select the tangent under the pointer, or clear it on a
// miss. The wheel zooms around the pointer.
func (p *Plotter) HandlePointer(ev hal.PointerEvent) {
	size := p.size()
	switch ev.Kind {
	case hal.PointerPress:
		p.drag = drag{down: true, startX: ev.X, startY: ev.Y, lastX: ev.X, lastY: ev.Y}

	case hal.PointerMove:
		if !p.drag.down {
			return
		}
		if !p.drag.dragging {
			slop := clickSlop * p.scale()
			if math.Hypot(ev.X-p.drag.startX, ev.Y-p.drag.startY) < slop {
				return
			}
			p.drag.dragging = true
		}
		dx, dy := ev.X-p.drag.lastX, ev.Y-p.drag.lastY
		p.drag.lastX, p.drag.lastY = ev.X, ev.Y
		p.setViewport(p.scene.Viewport.Pan(dx, dy, size))

	case hal.PointerRelease:
		if !p.drag.down {
			return
		}
		d := p.drag
		p.drag = drag{}
		if d.dragging {
			p.setViewport(p.scene.Viewport.Pan(ev.X-d.lastX, ev.Y-d.lastY, size))
			return
		}
		if math.Hypot(ev.X-d.startX, ev.Y-d.startY) >= clickSlop*p.scale() {
			return
		}
		p.Click(ev.X, ev.Y)

	case hal.PointerWheel:
		if ev.WheelY == 0 || math.IsNaN(ev.WheelY) {
			return
		}
		f := math.Pow(zoomStep, ev.WheelY)
		p.setViewport(p.scene.Viewport.ZoomAt(f, viewport.Point{X: ev.X, Y: ev.Y}, size))
	}
}

// Click picks the tangent at a framebuffer pixel. It reports whether a curve was hit.
func (p *Plotter) Click(x, y float64) bool {
	size := p.size()
	if !size.Valid() {
		return false
	}
	g := viewport.PixelToGraph(viewport.Point{X: x, Y: y}, p.scene.Viewport.Bounds(size), size)
	tp, ok := tangent.Pick(p.scene.Equations, g)
	if !ok {
		p.setTangent(nil)
		return false
	}
	p.log.Debug("tangent selected",
		zap.String("equation", tp.EquationID),
		zap.Float64("x", tp.X),
		zap.Float64("y", tp.Y),
		zap.Float64("slope", tp.Slope),
	)
	p.setTangent(&tp)
	return true
}
