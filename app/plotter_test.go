package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PriyathamGoroju/graphing/graph/scene"
	"github.com/PriyathamGoroju/graphing/graph/tangent"
	"github.com/PriyathamGoroju/graphing/graph/viewport"
	"github.com/PriyathamGoroju/graphing/hal"
	"github.com/PriyathamGoroju/graphing/internal/config"
)

type fakeFB struct {
	img      *image.RGBA
	scale    float64
	presents int
}

func (f *fakeFB) Width() int         { return f.img.Rect.Dx() }
func (f *fakeFB) Height() int        { return f.img.Rect.Dy() }
func (f *fakeFB) Scale() float64     { return f.scale }
func (f *fakeFB) Image() *image.RGBA { return f.img }
func (f *fakeFB) Present() error     { f.presents++; return nil }
func (f *fakeFB) ClearRGB(r, g, b uint8) {
	for i := 0; i+3 < len(f.img.Pix); i += 4 {
		f.img.Pix[i], f.img.Pix[i+1], f.img.Pix[i+2], f.img.Pix[i+3] = r, g, b, 0xFF
	}
}

type fakeHAL struct {
	fb   *fakeFB
	keys chan hal.KeyEvent
	ptr  chan hal.PointerEvent
}

func newFakeHAL(w, h int, scale float64) *fakeHAL {
	return &fakeHAL{
		fb:   &fakeFB{img: image.NewRGBA(image.Rect(0, 0, w, h)), scale: scale},
		keys: make(chan hal.KeyEvent, 16),
		ptr:  make(chan hal.PointerEvent, 16),
	}
}

func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return keyboard(h.keys) }
func (h *fakeHAL) Pointer() hal.Pointer         { return pointer(h.ptr) }

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type pointer chan hal.PointerEvent

func (p pointer) Events() <-chan hal.PointerEvent { return p }

type reloads chan *config.Config

func (r reloads) Changes() <-chan *config.Config { return r }

// 200x200 at zoom 1 shows [-10, 10] on both axes, 10 px per unit.
func newTestPlotter(t *testing.T, opts Options) (*Plotter, *fakeHAL) {
	t.Helper()
	h := newFakeHAL(200, 200, 1)
	return NewPlotter(h, opts), h
}

func graphPx(p viewport.Point) (float64, float64) {
	size := viewport.Size{W: 200, H: 200}
	px := viewport.GraphToPixel(p, viewport.Default().Bounds(size), size)
	return px.X, px.Y
}

func TestNewPlotter_AppliesConfig(t *testing.T) {
	grid := false
	cfg := &config.Config{
		View: config.View{Theme: "dark", Grid: &grid, CenterX: 3, Zoom: 2},
		Equations: []config.Equation{
			{Expression: "x^2", Color: "#00ff00"},
			{Expression: "sin(x)"},
		},
	}
	p, _ := newTestPlotter(t, Options{Config: cfg})

	s := p.Scene()
	assert.Equal(t, scene.ThemeDark, s.Theme)
	assert.False(t, s.Grid)
	assert.Equal(t, 2.0, s.Viewport.Zoom())
	assert.Equal(t, 3.0, s.Viewport.Center.X)
	require.Len(t, s.Equations, 2)
	assert.Equal(t, color.RGBA{G: 0xFF, A: 0xFF}, s.Equations[0].Color)
	assert.Equal(t, scene.DefaultColor(1), s.Equations[1].Color)
}

func TestAddEquation(t *testing.T) {
	p, _ := newTestPlotter(t, Options{})

	id, v := p.AddEquation("  2x + 1 ", color.RGBA{})
	require.True(t, v.IsValid)
	require.NotEmpty(t, id)

	_, v = p.AddEquation("x +", color.RGBA{R: 1, A: 255})
	assert.False(t, v.IsValid)
	assert.NotEmpty(t, v.Error)

	_, v = p.AddEquation("", color.RGBA{})
	assert.False(t, v.IsValid)

	eqs := p.Scene().Equations
	require.Len(t, eqs, 1)
	assert.Equal(t, "2x + 1", eqs[0].Expression)
	assert.Equal(t, scene.DefaultColor(0), eqs[0].Color)
}

func TestStep_RendersOnlyWhenDirty(t *testing.T) {
	p, h := newTestPlotter(t, Options{})

	require.NoError(t, p.Step())
	assert.Equal(t, 1, h.fb.presents)
	require.NoError(t, p.Step())
	assert.Equal(t, 1, h.fb.presents, "an idle step must not re-render")

	h.keys <- hal.KeyEvent{Rune: 'g', Press: true}
	require.NoError(t, p.Step())
	assert.Equal(t, 2, h.fb.presents)
	assert.False(t, p.Scene().Grid)

	// A resize re-renders without any input.
	h.fb.img = image.NewRGBA(image.Rect(0, 0, 120, 80))
	require.NoError(t, p.Step())
	assert.Equal(t, 3, h.fb.presents)
}

func TestHandleKey(t *testing.T) {
	var changes []viewport.Viewport
	p, h := newTestPlotter(t, Options{OnViewportChange: func(v viewport.Viewport) { changes = append(changes, v) }})

	send := func(evs ...hal.KeyEvent) {
		for _, ev := range evs {
			h.keys <- ev
		}
		require.NoError(t, p.Step())
	}

	send(hal.KeyEvent{Code: hal.KeyRight, Press: true})
	assert.InDelta(t, 2.0, p.Viewport().Center.X, 1e-9)

	send(hal.KeyEvent{Code: hal.KeyUp, Press: true}, hal.KeyEvent{Code: hal.KeyUp, Press: false})
	assert.InDelta(t, 2.0, p.Viewport().Center.Y, 1e-9)

	send(hal.KeyEvent{Rune: '+', Press: true})
	assert.InDelta(t, 1.25, p.Viewport().Zoom(), 1e-9)

	send(hal.KeyEvent{Rune: '-', Press: true}, hal.KeyEvent{Rune: '-', Press: true})
	assert.InDelta(t, 0.8, p.Viewport().Zoom(), 1e-9)

	for i := 0; i < 10; i++ {
		h.keys <- hal.KeyEvent{Rune: '=', Press: true}
	}
	require.NoError(t, p.Step())
	assert.Equal(t, 2.0, p.Viewport().Zoom())

	send(hal.KeyEvent{Rune: '0', Press: true})
	assert.Equal(t, viewport.Default(), p.Viewport())

	send(hal.KeyEvent{Rune: 't', Press: true})
	assert.Equal(t, scene.ThemeDark, p.Scene().Theme)

	require.NotEmpty(t, changes)
	assert.Equal(t, viewport.Default(), changes[len(changes)-1])
}

func TestHandlePointer_DragPans(t *testing.T) {
	p, h := newTestPlotter(t, Options{})
	p.AddEquation("x", color.RGBA{})

	h.ptr <- hal.PointerEvent{Kind: hal.PointerPress, X: 100, Y: 100}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: 102, Y: 100}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: 120, Y: 90}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerRelease, X: 130, Y: 80}
	require.NoError(t, p.Step())

	// 30 px right and 20 px up at 10 px per unit.
	c := p.Viewport().Center
	assert.InDelta(t, -3.0, c.X, 1e-9)
	assert.InDelta(t, -2.0, c.Y, 1e-9)
	assert.Nil(t, p.Tangent(), "a drag must not pick")
}

func TestHandlePointer_ClickPicksAndMissClears(t *testing.T) {
	var picks []*tangent.Point
	p, h := newTestPlotter(t, Options{OnTangent: func(tp *tangent.Point) { picks = append(picks, tp) }})
	id, v := p.AddEquation("x^2", color.RGBA{})
	require.True(t, v.IsValid)

	x, y := graphPx(viewport.Point{X: 2, Y: 4})
	h.ptr <- hal.PointerEvent{Kind: hal.PointerPress, X: x, Y: y}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: x + 1, Y: y}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerRelease, X: x + 1, Y: y}
	require.NoError(t, p.Step())

	tp := p.Tangent()
	require.NotNil(t, tp)
	assert.Equal(t, id, tp.EquationID)
	// The nearest sample to (2.1, 4) lies just right of x=2.
	assert.InDelta(t, 2.0, tp.X, 0.05)
	assert.InDelta(t, 2*tp.X, tp.Slope, 1e-3)
	assert.Equal(t, viewport.Default(), p.Viewport(), "a click must not pan")

	x, y = graphPx(viewport.Point{X: -5, Y: 9})
	h.ptr <- hal.PointerEvent{Kind: hal.PointerPress, X: x, Y: y}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerRelease, X: x, Y: y}
	require.NoError(t, p.Step())
	assert.Nil(t, p.Tangent())

	require.Len(t, picks, 2)
	assert.NotNil(t, picks[0])
	assert.Nil(t, picks[1])
}

func TestHandlePointer_WheelZoomsAtCursor(t *testing.T) {
	p, h := newTestPlotter(t, Options{})
	size := viewport.Size{W: 200, H: 200}
	anchor := viewport.Point{X: 150, Y: 50}
	before := viewport.PixelToGraph(anchor, p.Viewport().Bounds(size), size)

	h.ptr <- hal.PointerEvent{Kind: hal.PointerWheel, X: anchor.X, Y: anchor.Y, WheelY: 1}
	require.NoError(t, p.Step())

	assert.InDelta(t, 1.25, p.Viewport().Zoom(), 1e-9)
	after := viewport.PixelToGraph(anchor, p.Viewport().Bounds(size), size)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestTangent_InvalidatedByEquationChanges(t *testing.T) {
	p, _ := newTestPlotter(t, Options{})
	id, _ := p.AddEquation("x^2", color.RGBA{})
	other, _ := p.AddEquation("x + 20", color.RGBA{})

	pick := func() {
		t.Helper()
		x, y := graphPx(viewport.Point{X: 1, Y: 1})
		require.True(t, p.Click(x, y))
		require.NotNil(t, p.Tangent())
	}

	pick()
	require.True(t, p.RemoveEquation(other))
	assert.NotNil(t, p.Tangent(), "removing another equation keeps the tangent")

	require.True(t, p.SetVisible(id, false))
	assert.Nil(t, p.Tangent())
	require.True(t, p.SetVisible(id, true))

	pick()
	eq, ok := p.Scene().Find(id)
	require.True(t, ok)
	eq.Expression = "x^3"
	require.True(t, p.SetEquation(eq).IsValid)
	assert.Nil(t, p.Tangent())

	pick()
	eq.Expression = "x^3 +"
	assert.False(t, p.SetEquation(eq).IsValid)
	assert.NotNil(t, p.Tangent(), "a rejected edit changes nothing")

	require.True(t, p.RemoveEquation(id))
	assert.Nil(t, p.Tangent())
	assert.False(t, p.RemoveEquation(id))

	assert.Empty(t, p.Scene().Equations)
}

func TestHandleKey_EscapeClearsTangent(t *testing.T) {
	p, _ := newTestPlotter(t, Options{})
	p.AddEquation("x", color.RGBA{})
	x, y := graphPx(viewport.Point{X: 3, Y: 3})
	require.True(t, p.Click(x, y))

	p.HandleKey(hal.KeyEvent{Code: hal.KeyEscape, Press: true})
	assert.Nil(t, p.Tangent())
}

func TestStep_AppliesReloads(t *testing.T) {
	ch := make(reloads, 2)
	lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
	p, _ := newTestPlotter(t, Options{Reloads: ch, Level: &lvl})

	p.AddEquation("x", color.RGBA{})
	x, y := graphPx(viewport.Point{X: 3, Y: 3})
	require.True(t, p.Click(x, y))

	ch <- &config.Config{
		View:      config.View{Theme: "blue", Zoom: 0.5},
		Log:       config.Log{Level: "debug"},
		Equations: []config.Equation{{Expression: "sin(x)"}},
	}
	require.NoError(t, p.Step())

	s := p.Scene()
	assert.Equal(t, scene.ThemeBlue, s.Theme)
	assert.Equal(t, 0.5, s.Viewport.Zoom())
	require.Len(t, s.Equations, 1)
	assert.Equal(t, "sin(x)", s.Equations[0].Expression)
	assert.Nil(t, p.Tangent(), "reloaded equations replace the tangent source")
	assert.Equal(t, zap.DebugLevel, lvl.Level())

	// Home returns to the reloaded view, not the built-in default.
	p.HandleKey(hal.KeyEvent{Code: hal.KeyRight, Press: true})
	p.HandleKey(hal.KeyEvent{Code: hal.KeyHome, Press: true})
	assert.Equal(t, s.Viewport, p.Viewport())
}

func TestExportPNG(t *testing.T) {
	h := newFakeHAL(200, 100, 2)
	p := NewPlotter(h, Options{ExportDir: t.TempDir()})
	p.AddEquation("x", color.RGBA{})

	path, err := p.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds(), "exports are at logical size")

	next, err := p.Snapshot()
	require.NoError(t, err)
	assert.NotEqual(t, path, next)
}

func TestExportPNG_NoFramebuffer(t *testing.T) {
	p := NewPlotter(nil, Options{})
	require.ErrorIs(t, p.ExportPNG(filepath.Join(t.TempDir(), "x.png")), errNoFramebuffer)
	require.NoError(t, p.Step())
}

func TestStep_RecoversPanic(t *testing.T) {
	p, h := newTestPlotter(t, Options{
		OnViewportChange: func(viewport.Viewport) { panic("boom") },
	})
	h.keys <- hal.KeyEvent{Code: hal.KeyLeft, Press: true}

	err := p.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	white := 0
	for i := 0; i+3 < len(h.fb.img.Pix); i += 4 {
		if h.fb.img.Pix[i] == 255 && h.fb.img.Pix[i+1] == 255 && h.fb.img.Pix[i+2] == 255 {
			white++
		}
	}
	assert.Greater(t, white, 200*200/2, "panic screen clears to white")
	assert.Positive(t, h.fb.presents)
}

func TestTakeRunes(t *testing.T) {
	a, b := takeRunes("héllo", 2)
	assert.Equal(t, "hé", a)
	assert.Equal(t, "llo", b)
	a, b = takeRunes("hi", 5)
	assert.Equal(t, "hi", a)
	assert.Empty(t, b)
}

func TestSetEquation_UntrimmedCopyKeepsTangent(t *testing.T) {
	p, _ := newTestPlotter(t, Options{})
	id, v := p.AddEquation("  x^2 ", color.RGBA{})
	require.True(t, v.IsValid)

	x, y := graphPx(viewport.Point{X: 1, Y: 1})
	require.True(t, p.Click(x, y))
	require.Equal(t, "x^2", p.Tangent().Source)

	eq, ok := p.Scene().Find(id)
	require.True(t, ok)
	eq.Expression = " x^2  "
	require.True(t, p.SetEquation(eq).IsValid)

	stored, _ := p.Scene().Find(id)
	assert.Equal(t, "x^2", stored.Expression)
	assert.NotNil(t, p.Tangent(), "whitespace-only edits keep the tangent")
}
