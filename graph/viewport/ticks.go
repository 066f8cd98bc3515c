package viewport

import "math"

const (
	// MinLabelSpacing is the minimum distance between tick labels, in logical pixels.
	MinLabelSpacing = 60.0
	// LabelPadding is the gap kept between neighbouring labels, in logical pixels.
	LabelPadding = 8.0

	maxTicks = 512
)

// TickStep returns the distance between ticks in graph units.
//
// The base step is the largest power of two not above zoom. It is raised to the
// smallest 1/2/5×10^n step that keeps ticks at least minSpacingPx apart.
func TickStep(zoom, pixelsPerUnit, minSpacingPx float64) float64 {
	base := math.Exp2(math.Floor(math.Log2(ClampZoom(zoom))))
	if !(pixelsPerUnit > 0) || !(minSpacingPx > 0) || math.IsInf(pixelsPerUnit, 0) {
		return base
	}
	return math.Max(base, niceStep(minSpacingPx/pixelsPerUnit))
}

// Ticks returns the multiples of step in [lo, hi], in increasing order.
func Ticks(lo, hi, step float64) []float64 {
	if !(step > 0) || math.IsInf(step, 0) || math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return nil
	}
	first := math.Ceil(lo/step - 1e-9)
	last := math.Floor(hi/step + 1e-9)
	if last-first+1 > maxTicks {
		return nil
	}
	out := make([]float64, 0, int(last-first)+1)
	for k := first; k <= last; k++ {
		v := k * step
		if k == 0 {
			v = 0
		}
		out = append(out, v)
	}
	return out
}

// ShowLabel reports whether a label of labelWidthPx fits into gapPx with paddingPx to spare.
func ShowLabel(gapPx, labelWidthPx, paddingPx float64) bool {
	return gapPx >= labelWidthPx+paddingPx
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	if pow == 0 || math.IsNaN(pow) || math.IsInf(pow, 0) {
		return 1
	}
	frac := raw / pow
	switch {
	case frac <= 1:
		return 1 * pow
	case frac <= 2:
		return 2 * pow
	case frac <= 5:
		return 5 * pow
	default:
		return 10 * pow
	}
}
