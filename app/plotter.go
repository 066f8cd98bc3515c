package app

import (
	"fmt"
	"image/color"
	"strings"

	"go.uber.org/zap"

	"github.com/PriyathamGoroju/graphing/graph/expr"
	"github.com/PriyathamGoroju/graphing/graph/render"
	"github.com/PriyathamGoroju/graphing/graph/scene"
	"github.com/PriyathamGoroju/graphing/graph/tangent"
	"github.com/PriyathamGoroju/graphing/graph/viewport"
	"github.com/PriyathamGoroju/graphing/hal"
	"github.com/PriyathamGoroju/graphing/internal/config"
	"github.com/PriyathamGoroju/graphing/internal/logging"
)

// Plotter holds the authoritative scene. It is driven from a single loop: every
// method must be called from the goroutine that calls Step.
type Plotter struct {
	log   *zap.Logger
	level *zap.AtomicLevel

	fb      hal.Framebuffer
	keys    <-chan hal.KeyEvent
	pointer <-chan hal.PointerEvent
	reloads <-chan *config.Config

	scene   scene.Scene
	home    viewport.Viewport
	tangent *tangent.Point

	onViewport func(viewport.Viewport)
	onTangent  func(*tangent.Point)

	exportDir string
	exportSeq int

	drag drag

	dirty     bool
	lastW     int
	lastH     int
	lastScale float64
	renders   uint64
}

// NewPlotter wires a Plotter to h. A configuration that fails to convert is logged
// and replaced by the defaults.
func NewPlotter(h hal.HAL, opts Options) *Plotter {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := &Plotter{
		log:        log,
		level:      opts.Level,
		scene:      scene.Default(),
		home:       viewport.Default(),
		onViewport: opts.OnViewportChange,
		onTangent:  opts.OnTangent,
		exportDir:  opts.ExportDir,
		dirty:      true,
	}

	if h != nil {
		if d := h.Display(); d != nil {
			p.fb = d.Framebuffer()
		}
		if in := h.Input(); in != nil {
			if k := in.Keyboard(); k != nil {
				p.keys = k.Events()
			}
			if ptr := in.Pointer(); ptr != nil {
				p.pointer = ptr.Events()
			}
		}
	}
	if opts.Reloads != nil {
		p.reloads = opts.Reloads.Changes()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := p.applyConfig(cfg); err != nil {
		log.Error("startup config rejected, using defaults", zap.Error(err))
	}
	return p
}

// Scene returns a copy of the current scene.
func (p *Plotter) Scene() scene.Scene {
	s := p.scene
	s.Equations = append([]scene.Equation(nil), p.scene.Equations...)
	return s
}

func (p *Plotter) Viewport() viewport.Viewport { return p.scene.Viewport }

// Tangent returns the selected tangent point, or nil.
func (p *Plotter) Tangent() *tangent.Point {
	if p.tangent == nil {
		return nil
	}
	tp := *p.tangent
	return &tp
}

// AddEquation validates expression and appends it to the list. A zero colour picks the
// next default colour. Invalid input leaves the list unchanged.
func (p *Plotter) AddEquation(expression string, c color.RGBA) (string, expr.Validation) {
	v := expr.Validate(expression)
	if !v.IsValid {
		p.log.Debug("equation rejected", zap.String("expression", expression), zap.String("reason", v.Error))
		return "", v
	}
	if c == (color.RGBA{}) {
		c = scene.DefaultColor(len(p.scene.Equations))
	}
	eq := scene.NewEquation(expression, c)
	p.scene.Equations = append(p.scene.Equations, eq)
	p.log.Debug("equation added", zap.String("id", eq.ID), zap.String("expression", eq.Expression))
	p.dirty = true
	return eq.ID, v
}

// SetEquation replaces the equation with the same ID. The new expression must validate.
func (p *Plotter) SetEquation(eq scene.Equation) expr.Validation {
	v := expr.Validate(eq.Expression)
	if !v.IsValid {
		return v
	}
	for i := range p.scene.Equations {
		if p.scene.Equations[i].ID == eq.ID {
			eq.Expression = strings.TrimSpace(eq.Expression)
			p.scene.Equations[i] = eq
			p.equationsChanged()
			return v
		}
	}
	return expr.Validation{Error: fmt.Sprintf("no equation with id %q", eq.ID)}
}

// SetVisible shows or hides an equation. It reports whether the ID exists.
func (p *Plotter) SetVisible(id string, visible bool) bool {
	for i := range p.scene.Equations {
		if p.scene.Equations[i].ID == id {
			p.scene.Equations[i].Visible = visible
			p.equationsChanged()
			return true
		}
	}
	return false
}

// RemoveEquation deletes an equation. It reports whether the ID existed.
func (p *Plotter) RemoveEquation(id string) bool {
	for i := range p.scene.Equations {
		if p.scene.Equations[i].ID == id {
			p.scene.Equations = append(p.scene.Equations[:i], p.scene.Equations[i+1:]...)
			p.equationsChanged()
			return true
		}
	}
	return false
}

// SetViewport replaces the view. The zoom is clamped by the viewport itself.
func (p *Plotter) SetViewport(v viewport.Viewport) {
	p.setViewport(v)
}

func (p *Plotter) setViewport(v viewport.Viewport) {
	if v == p.scene.Viewport {
		return
	}
	p.scene.Viewport = v
	p.dirty = true
	if p.onViewport != nil {
		p.onViewport(v)
	}
}

func (p *Plotter) setTangent(tp *tangent.Point) {
	if tp == nil && p.tangent == nil {
		return
	}
	p.tangent = tp
	p.dirty = true
	if p.onTangent != nil {
		p.onTangent(p.Tangent())
	}
}

// equationsChanged drops a tangent whose source equation was removed, hidden or edited.
func (p *Plotter) equationsChanged() {
	p.dirty = true
	if p.tangent != nil && !p.tangent.Tracks(p.scene.Equations) {
		p.log.Debug("tangent source changed, clearing", zap.String("id", p.tangent.EquationID))
		p.setTangent(nil)
	}
}

// applyConfig replaces the scene with the one described by cfg.
func (p *Plotter) applyConfig(cfg *config.Config) error {
	s, err := cfg.Scene()
	if err != nil {
		return err
	}
	if p.level != nil && cfg.Log.Level != "" {
		lvl, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		p.level.SetLevel(lvl)
	}

	p.scene.Equations = s.Equations
	p.scene.Grid = s.Grid
	p.scene.Theme = s.Theme
	p.home = s.Viewport
	p.setViewport(s.Viewport)
	p.equationsChanged()
	return nil
}

func (p *Plotter) size() viewport.Size {
	if p.fb == nil {
		return viewport.Size{}
	}
	return viewport.Size{W: p.fb.Width(), H: p.fb.Height()}
}

func (p *Plotter) scale() float64 {
	if p.fb == nil {
		return 1
	}
	if s := p.fb.Scale(); s > 0 {
		return s
	}
	return 1
}

// Step drains pending configuration and input, then re-renders if anything changed.
// A panic inside the step is reported on screen and returned as an error.
func (p *Plotter) Step() (err error) {
	defer p.recoverPanic(&err)

	p.drainReloads()
	p.drainInput()

	if p.fb == nil {
		return nil
	}
	w, h, s := p.fb.Width(), p.fb.Height(), p.scale()
	if w != p.lastW || h != p.lastH || s != p.lastScale {
		p.lastW, p.lastH, p.lastScale = w, h, s
		p.dirty = true
	}
	if p.dirty {
		return p.Render()
	}
	return nil
}

// Render draws the scene into the framebuffer and presents it.
func (p *Plotter) Render() error {
	p.dirty = false
	if p.fb == nil {
		return nil
	}
	c := render.NewCanvas(p.fb.Image())
	st := render.Renderer{Scale: p.scale()}.Render(c, p.scene, p.tangent)
	p.renders++
	p.log.Debug("frame rendered",
		zap.Uint64("frame", p.renders),
		zap.Int("curves", st.Curves),
		zap.Int("points", st.Points),
		zap.Int("segments", st.Segments),
		zap.Int("labels", st.Labels),
		zap.Int("culled", st.Culled),
	)
	return p.fb.Present()
}

func (p *Plotter) drainReloads() {
	if p.reloads == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-p.reloads:
			if !ok {
				p.reloads = nil
				return
			}
			if cfg == nil {
				continue
			}
			if err := p.applyConfig(cfg); err != nil {
				p.log.Warn("config reload not applied", zap.Error(err))
				continue
			}
			p.log.Info("config applied", zap.Int("equations", len(p.scene.Equations)))
		default:
			return
		}
	}
}

func (p *Plotter) drainInput() {
	for {
		select {
		case ev, ok := <-p.keys:
			if !ok {
				p.keys = nil
				continue
			}
			p.HandleKey(ev)
		case ev, ok := <-p.pointer:
			if !ok {
				p.pointer = nil
				continue
			}
			p.HandlePointer(ev)
		default:
			return
		}
	}
}
