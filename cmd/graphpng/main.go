// Command graphpng renders a plotter configuration to a PNG file without opening a window.
package main

import (
	"flag"
	"fmt"
	"image"
	"math"
	"os"
	"strings"

	"github.com/PriyathamGoroju/graphing/graph/expr"
	"github.com/PriyathamGoroju/graphing/graph/render"
	"github.com/PriyathamGoroju/graphing/graph/scene"
	"github.com/PriyathamGoroju/graphing/graph/tangent"
	"github.com/PriyathamGoroju/graphing/internal/config"
)

// exprList collects repeated -expr flags.
type exprList []string

func (l *exprList) String() string { return strings.Join(*l, ", ") }

func (l *exprList) Set(s string) error {
	if v := expr.Validate(s); !v.IsValid {
		return fmt.Errorf("%q: %s", s, v.Error)
	}
	*l = append(*l, s)
	return nil
}

const (
	defaultWidth  = 800
	defaultHeight = 600
)

type options struct {
	configPath string
	outPath    string
	width      int
	height     int
	scale      float64
	theme      string
	exprs      exprList
	tangentX   float64
}

func main() {
	var o options
	o.tangentX = math.NaN()
	flag.StringVar(&o.configPath, "config", "", "Configuration file (.yaml, .yml or .toml).")
	flag.StringVar(&o.outPath, "out", "graph.png", "Output PNG path.")
	flag.IntVar(&o.width, "width", 0, "Image width in logical pixels (default from config, else 800).")
	flag.IntVar(&o.height, "height", 0, "Image height in logical pixels (default from config, else 600).")
	flag.Float64Var(&o.scale, "scale", 0, "Device pixels per logical pixel; the image is rendered at this density.")
	flag.StringVar(&o.theme, "theme", "", "light|dark|blue (overrides the configuration).")
	flag.Var(&o.exprs, "expr", "Equation to plot; may be repeated. Added after the configured ones.")
	flag.Func("tangent", "Draw the tangent of the first visible equation at this x.", func(s string) error {
		_, err := fmt.Sscan(s, &o.tangentX)
		return err
	})
	flag.Parse()

	if o.outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}
	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(o options) error {
	cfg := config.Default()
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = c
	}
	s, err := cfg.Scene()
	if err != nil {
		return err
	}
	for _, src := range o.exprs {
		s.Equations = append(s.Equations, scene.NewEquation(src, scene.DefaultColor(len(s.Equations))))
	}
	if o.theme != "" {
		th, err := scene.ParseTheme(o.theme)
		if err != nil {
			return err
		}
		s.Theme = th
	}

	w, h := pick(o.width, cfg.Window.Width, defaultWidth), pick(o.height, cfg.Window.Height, defaultHeight)
	sc := o.scale
	if !(sc > 0) {
		sc = cfg.Window.Scale
	}
	if !(sc > 0) {
		sc = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, int(float64(w)*sc), int(float64(h)*sc)))
	tp, err := tangentAt(s, o.tangentX)
	if err != nil {
		return err
	}
	render.Renderer{Scale: sc}.Render(render.NewCanvas(img), s, tp)

	f, err := os.Create(o.outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", o.outPath, err)
	}
	if err := render.WritePNG(f, img, render.PNGOptions{}); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// tangentAt builds the tangent of the first visible equation at x. NaN means none.
func tangentAt(s scene.Scene, x float64) (*tangent.Point, error) {
	if math.IsNaN(x) {
		return nil, nil
	}
	vis := s.Visible()
	if len(vis) == 0 {
		return nil, fmt.Errorf("-tangent needs a visible equation")
	}
	eq := vis[0]
	y := expr.Evaluate(eq.Expression, x)
	m, ok := tangent.Derivative(eq.Expression, x, tangent.DefaultStep)
	if math.IsNaN(y) || !ok {
		return nil, fmt.Errorf("%s has no tangent at x=%g", eq.Expression, x)
	}
	return &tangent.Point{X: x, Y: y, Slope: m, Source: eq.Expression, EquationID: eq.ID, Color: eq.Color}, nil
}

func pick(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
