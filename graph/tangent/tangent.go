// Package tangent estimates slopes and picks the curve point a click lands on.
package tangent

import (
	"image/color"
	"math"

	"github.com/PriyathamGoroju/graphing/graph/expr"
	"github.com/PriyathamGoroju/graphing/graph/sample"
	"github.com/PriyathamGoroju/graphing/graph/scene"
	"github.com/PriyathamGoroju/graphing/graph/viewport"
)

const (
	// DefaultStep is the central-difference half width used when none is given.
	DefaultStep = 1e-4

	// PickRadius is the half width, in graph units, of the x window resampled around a click.
	PickRadius = 0.1
	// PickStep is the sampling step inside the pick window.
	PickStep = 0.01
	// PickThreshold is the largest graph-space distance that still counts as a hit.
	PickThreshold = 0.5
)

// Point is a selected curve point together with its slope.
type Point struct {
	X     float64
	Y     float64
	Slope float64

	Source     string
	EquationID string
	Color      color.RGBA
}

// Derivative estimates the slope of expression at x by central difference.
// ok is false when either neighbour cannot be evaluated.
func Derivative(expression string, x, h float64) (float64, bool) {
	e, err := expr.Compile(expression)
	if err != nil {
		return 0, false
	}
	return DerivativeOf(e, x, h)
}

// DerivativeOf is Derivative for a compiled expression.
func DerivativeOf(e *expr.Expr, x, h float64) (float64, bool) {
	if !(h > 0) || math.IsInf(h, 0) {
		h = DefaultStep
	}
	hi := e.Eval(x + h)
	lo := e.Eval(x - h)
	if math.IsNaN(hi) || math.IsNaN(lo) {
		return 0, false
	}
	m := (hi - lo) / (2 * h)
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, false
	}
	return m, true
}

// Pick finds the sampled point closest to click across the visible equations.
//
// Each equation is resampled on [click.X-PickRadius, click.X+PickRadius]. On equal
// distances the earlier equation, and the earlier sample, wins. ok is false when nothing
// lies within PickThreshold or the slope at the nearest point is undefined.
func Pick(equations []scene.Equation, click viewport.Point) (Point, bool) {
	best := math.Inf(1)
	var (
		hit   sample.Point
		hitEq scene.Equation
		hitEx *expr.Expr
	)
	for _, eq := range equations {
		if !eq.Visible {
			continue
		}
		e, err := expr.Compile(eq.Expression)
		if err != nil {
			continue
		}
		for _, p := range sample.Generate(e, click.X-PickRadius, click.X+PickRadius, PickStep) {
			if p.IsBreak() {
				continue
			}
			if d := math.Hypot(p.X-click.X, p.Y-click.Y); d < best {
				best, hit, hitEq, hitEx = d, p, eq, e
			}
		}
	}
	if !(best < PickThreshold) {
		return Point{}, false
	}
	m, ok := DerivativeOf(hitEx, hit.X, DefaultStep)
	if !ok {
		return Point{}, false
	}
	return Point{
		X:          hit.X,
		Y:          hit.Y,
		Slope:      m,
		Source:     hitEq.Expression,
		EquationID: hitEq.ID,
		Color:      hitEq.Color,
	}, true
}

// Line returns the endpoints of the tangent through p at the left and right edges of b.
func Line(p Point, b viewport.Bounds) (viewport.Point, viewport.Point) {
	at := func(x float64) viewport.Point {
		return viewport.Point{X: x, Y: p.Y + p.Slope*(x-p.X)}
	}
	return at(b.XMin), at(b.XMax)
}

// Tracks reports whether p still belongs to a visible, unchanged equation in eqs.
func (p Point) Tracks(eqs []scene.Equation) bool {
	for _, eq := range eqs {
		if eq.ID == p.EquationID {
			return eq.Visible && eq.Expression == p.Source
		}
	}
	return false
}
