//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// RunWindow opens a desktop window that shows the framebuffer and forwards keyboard and
// pointer input. The framebuffer follows the window size at the monitor's device scale.
// It blocks until the window closes or the step function fails.
func RunWindow(opts Options, newApp func(HAL) func() error) error {
	opts = opts.withDefaults()
	h := newHost(opts)
	step := newApp(h)

	g := &hostGame{h: h, step: step, scale: opts.Scale}
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	h.log.Info("window host started", zap.Int("width", opts.Width), zap.Int("height", opts.Height))
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
	// scale is the configured override; 0 follows the monitor.
	scale float64
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.ptr.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	g.scratch = fb.snapshot(g.scratch)
	w, h := fb.Width(), fb.Height()
	if len(g.scratch) != w*h*4 {
		// Resized between the two calls; the next frame catches up.
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.scale
	if s <= 0 {
		s = ebiten.Monitor().DeviceScaleFactor()
	}
	if s <= 0 {
		s = 1
	}
	w := int(float64(outsideWidth) * s)
	h := int(float64(outsideHeight) * s)
	if g.h.fb.resize(w, h, s) {
		g.h.log.Debug("framebuffer resized", zap.Int("width", w), zap.Int("height", h), zap.Float64("scale", s))
	}
	return g.h.fb.Width(), g.h.fb.Height()
}
