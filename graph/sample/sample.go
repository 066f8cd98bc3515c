// Package sample turns an expression into a discontinuity-aware point sequence.
package sample

import (
	"math"
	"strings"

	"github.com/PriyathamGoroju/graphing/graph/expr"
)

const (
	// MaxPoints caps a single sampling pass, break markers included.
	MaxPoints = 1000
	// BreakThreshold is the magnitude above which a value, or a jump between neighbours,
	// is treated as a discontinuity.
	BreakThreshold = 1e6
)

// Point is one sample. A NaN Y marks a break: it is never joined to its neighbours.
type Point struct {
	X float64
	Y float64
}

// IsBreak reports whether p is a break marker.
func (p Point) IsBreak() bool { return math.IsNaN(p.Y) }

// GeneratePoints samples expression over [xMin, xMax] at the given step.
// An expression that does not compile yields no points.
func GeneratePoints(expression string, xMin, xMax, step float64) []Point {
	if strings.TrimSpace(expression) == "" {
		return nil
	}
	e, err := expr.Compile(expression)
	if err != nil {
		return nil
	}
	return Generate(e, xMin, xMax, step)
}

// Generate samples a compiled expression over [xMin, xMax] at the given step.
func Generate(e *expr.Expr, xMin, xMax, step float64) []Point {
	if e == nil || !(step > 0) || !finite(xMin) || !finite(xMax) || !finite(step) || xMin > xMax {
		return nil
	}

	n := MaxPoints
	if span := math.Floor((xMax-xMin)/step+1e-9) + 1; span < MaxPoints {
		n = int(span)
	}
	out := make([]Point, 0, n)

	open := false
	var prevX, prevY float64
	for i := 0; len(out) < MaxPoints; i++ {
		x := xMin + float64(i)*step
		if x > xMax+step*1e-9 {
			break
		}
		// A step below the float resolution at x would revisit the same x forever.
		if i > 0 && x <= prevX {
			break
		}
		prevX = x

		y := e.Eval(x)
		if math.IsNaN(y) || math.Abs(y) > BreakThreshold {
			if open {
				out = append(out, Point{X: x, Y: math.NaN()})
			}
			open = false
			continue
		}

		if open && math.Abs(y-prevY) > BreakThreshold {
			out = append(out, Point{X: x, Y: math.NaN()})
			if len(out) >= MaxPoints {
				break
			}
		}
		out = append(out, Point{X: x, Y: y})
		open = true
		prevY = y
	}
	return out
}

// Segments splits points at break markers into runs that are drawn as polylines.
// Runs never contain markers and are never empty.
func Segments(points []Point) [][]Point {
	var out [][]Point
	start := -1
	for i, p := range points {
		if p.IsBreak() {
			if start >= 0 {
				out = append(out, points[start:i])
			}
			start = -1
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, points[start:])
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
