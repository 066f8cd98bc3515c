package viewport

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestNew_ClampsZoom(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 3.0, want: 2.0},
		{in: 0.1, want: 0.5},
		{in: 1.5, want: 1.5},
		{in: -4, want: 0.5},
		{in: math.Inf(1), want: 2.0},
		{in: math.NaN(), want: 1},
	}
	for _, tt := range tests {
		if got := New(Point{}, tt.in).Zoom(); got != tt.want {
			t.Fatalf("New(zoom=%v).Zoom()=%v, want %v", tt.in, got, tt.want)
		}
	}

	v := Default()
	for i := 0; i < 10; i++ {
		v = v.ZoomBy(1.25)
	}
	if v.Zoom() != MaxZoom {
		t.Fatalf("repeated zoom in: %v, want %v", v.Zoom(), MaxZoom)
	}
	if got := v.WithZoom(0.01).Zoom(); got != MinZoom {
		t.Fatalf("WithZoom(0.01)=%v, want %v", got, MinZoom)
	}
	if got := (Viewport{}).Zoom(); got != 1 {
		t.Fatalf("zero Viewport zoom=%v, want 1", got)
	}
}

func TestComputeBounds(t *testing.T) {
	got := ComputeBounds(New(Point{X: 1, Y: -1}, 2), Size{W: 800, H: 400})
	want := Bounds{XMin: -4, XMax: 6, YMin: -3.5, YMax: 1.5}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("ComputeBounds mismatch (-want +got):\n%s", diff)
	}
	if ppu := got.PixelsPerUnit(Size{W: 800, H: 400}); ppu != 80 {
		t.Fatalf("PixelsPerUnit=%v, want 80", ppu)
	}
}

func TestGraphPixelRoundTrip(t *testing.T) {
	size := Size{W: 640, H: 480}
	for _, v := range []Viewport{Default(), New(Point{X: 3.5, Y: -7}, 0.5), New(Point{X: -100, Y: 42}, 2)} {
		b := ComputeBounds(v, size)
		for _, p := range []Point{{0, 0}, {320, 240}, {639, 1}, {12.25, 470.5}} {
			got := GraphToPixel(PixelToGraph(p, b, size), b, size)
			if diff := cmp.Diff(p, got, approx); diff != "" {
				t.Fatalf("round trip at %v (-want +got):\n%s", p, diff)
			}
		}
	}
}

func TestGraphToPixel_YInverted(t *testing.T) {
	size := Size{W: 200, H: 200}
	b := ComputeBounds(Default(), size)
	top := GraphToPixel(Point{X: 0, Y: b.YMax}, b, size)
	bottom := GraphToPixel(Point{X: 0, Y: b.YMin}, b, size)
	if top.Y != 0 || bottom.Y != 200 {
		t.Fatalf("y mapping top=%v bottom=%v, want 0 and 200", top.Y, bottom.Y)
	}
	origin := GraphToPixel(Point{}, b, size)
	if diff := cmp.Diff(Point{X: 100, Y: 100}, origin, approx); diff != "" {
		t.Fatalf("origin mismatch (-want +got):\n%s", diff)
	}
}

func TestPan(t *testing.T) {
	size := Size{W: 800, H: 600}
	v := New(Point{X: 2, Y: 3}, 1.5)

	moved := v.Pan(37, -12, size)
	if moved.Zoom() != v.Zoom() {
		t.Fatalf("pan changed zoom: %v -> %v", v.Zoom(), moved.Zoom())
	}
	back := moved.Pan(-37, 12, size)
	if diff := cmp.Diff(v.Center, back.Center, approx); diff != "" {
		t.Fatalf("pan inverse mismatch (-want +got):\n%s", diff)
	}

	// The graph point under the cursor at drag start stays under it.
	start := Point{X: 100, Y: 150}
	g := PixelToGraph(start, ComputeBounds(v, size), size)
	end := Point{X: start.X + 37, Y: start.Y - 12}
	got := GraphToPixel(g, ComputeBounds(moved, size), size)
	if diff := cmp.Diff(end, got, approx); diff != "" {
		t.Fatalf("anchored drag mismatch (-want +got):\n%s", diff)
	}
}

func TestPanFraction(t *testing.T) {
	size := Size{W: 400, H: 200}
	v := Default().PanFraction(0.1, -0.1, size)
	if diff := cmp.Diff(Point{X: 2, Y: -1}, v.Center, approx); diff != "" {
		t.Fatalf("PanFraction mismatch (-want +got):\n%s", diff)
	}
}

func TestZoomAt_KeepsAnchor(t *testing.T) {
	size := Size{W: 800, H: 600}
	v := New(Point{X: 1, Y: 1}, 1)
	anchor := Point{X: 600, Y: 100}
	g := PixelToGraph(anchor, ComputeBounds(v, size), size)

	z := v.ZoomAt(1.25, anchor, size)
	if z.Zoom() != 1.25 {
		t.Fatalf("zoom=%v, want 1.25", z.Zoom())
	}
	got := GraphToPixel(g, ComputeBounds(z, size), size)
	if diff := cmp.Diff(anchor, got, approx); diff != "" {
		t.Fatalf("anchor moved (-want +got):\n%s", diff)
	}

	capped := New(Point{X: 1, Y: 1}, MaxZoom)
	if got := capped.ZoomAt(1.25, anchor, size); got != capped {
		t.Fatalf("zoom at limit moved view: %+v", got)
	}
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		zoom float64
		ppu  float64
		want float64
	}{
		{zoom: 1, ppu: 40, want: 2},
		{zoom: 1, ppu: 200, want: 1},
		{zoom: 2, ppu: 400, want: 2},
		{zoom: 1.9, ppu: 400, want: 1},
		{zoom: 0.5, ppu: 1000, want: 0.5},
		{zoom: 0.5, ppu: 5, want: 20},
		{zoom: 1, ppu: 0, want: 1},
	}
	for _, tt := range tests {
		if got := TickStep(tt.zoom, tt.ppu, MinLabelSpacing); got != tt.want {
			t.Fatalf("TickStep(%v, %v)=%v, want %v", tt.zoom, tt.ppu, got, tt.want)
		}
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		lo, hi, step float64
		want         []float64
	}{
		{lo: -3, hi: 3, step: 2, want: []float64{-2, 0, 2}},
		{lo: 0, hi: 1, step: 0.5, want: []float64{0, 0.5, 1}},
		{lo: 0.1, hi: 0.2, step: 1, want: []float64{}},
		{lo: -1, hi: 1, step: 0, want: nil},
		{lo: 2, hi: 1, step: 1, want: nil},
	}
	for _, tt := range tests {
		got := Ticks(tt.lo, tt.hi, tt.step)
		if diff := cmp.Diff(tt.want, got, approx, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("Ticks(%v, %v, %v) mismatch (-want +got):\n%s", tt.lo, tt.hi, tt.step, diff)
		}
	}
	if got := Ticks(0, 1e9, 1e-3); got != nil {
		t.Fatalf("runaway tick count should be refused, got %d ticks", len(got))
	}
}

func TestShowLabel(t *testing.T) {
	tests := []struct {
		gap, width, pad float64
		want            bool
	}{
		{gap: 60, width: 30, pad: 8, want: true},
		{gap: 38, width: 30, pad: 8, want: true},
		{gap: 37.9, width: 30, pad: 8, want: false},
		{gap: 10, width: 30, pad: 8, want: false},
	}
	for _, tt := range tests {
		if got := ShowLabel(tt.gap, tt.width, tt.pad); got != tt.want {
			t.Fatalf("ShowLabel(%v, %v, %v)=%v, want %v", tt.gap, tt.width, tt.pad, got, tt.want)
		}
	}
}
