// Package config loads the plotter's startup file.
//
// A configuration file is YAML (.yaml, .yml) or TOML (.toml). It sets the window, the
// initial view, the log level and the equations shown at startup. Nothing is ever written
// back. With a Watcher the file is re-read when it changes on disk.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/PriyathamGoroju/graphing/graph/scene"
	"github.com/PriyathamGoroju/graphing/graph/viewport"
)

var (
	ErrFormat  = errors.New("unsupported config format")
	ErrInvalid = errors.New("invalid config")
)

type Config struct {
	Window    Window     `yaml:"window" toml:"window"`
	View      View       `yaml:"view" toml:"view"`
	Log       Log        `yaml:"log" toml:"log"`
	Equations []Equation `yaml:"equations" toml:"equations" validate:"max=64,dive"`

	// Path is the file the configuration was read from.
	Path string `yaml:"-" toml:"-"`
}

// Window sizes are in logical pixels. Zero keeps the built-in default.
type Window struct {
	Title  string  `yaml:"title" toml:"title" validate:"max=128"`
	Width  int     `yaml:"width" toml:"width" validate:"omitempty,min=64,max=8192"`
	Height int     `yaml:"height" toml:"height" validate:"omitempty,min=64,max=8192"`
	Scale  float64 `yaml:"scale" toml:"scale" validate:"omitempty,gt=0,lte=4"`
}

type View struct {
	Theme   string  `yaml:"theme" toml:"theme" validate:"omitempty,oneof=light dark blue"`
	Grid    *bool   `yaml:"grid" toml:"grid"`
	CenterX float64 `yaml:"center_x" toml:"center_x"`
	CenterY float64 `yaml:"center_y" toml:"center_y"`
	Zoom    float64 `yaml:"zoom" toml:"zoom" validate:"omitempty,gte=0.5,lte=2"`
}

type Log struct {
	Level string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type Equation struct {
	Expression string  `yaml:"expression" toml:"expression" validate:"required,expression"`
	Color      string  `yaml:"color" toml:"color" validate:"omitempty,hexcolor"`
	Visible    *bool   `yaml:"visible" toml:"visible"`
	LineWidth  float64 `yaml:"line_width" toml:"line_width" validate:"omitempty,gt=0,lte=12"`
	LineStyle  string  `yaml:"line_style" toml:"line_style" validate:"omitempty,oneof=solid dashed dotted"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{}
}

// Load reads and validates the file at path. The format follows the extension.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := decodeYAML(path, cfg); err != nil {
			return nil, err
		}
	case ".toml":
		if err := decodeTOML(path, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %q: %s", ErrFormat, ext, path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func decodeTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("decode %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Scene builds the initial scene. Equations without a colour take the default cycle.
func (c *Config) Scene() (scene.Scene, error) {
	s := scene.Default()
	if c == nil {
		return s, nil
	}
	if c.View.Theme != "" {
		th, err := scene.ParseTheme(c.View.Theme)
		if err != nil {
			return s, err
		}
		s.Theme = th
	}
	if c.View.Grid != nil {
		s.Grid = *c.View.Grid
	}
	s.Viewport = c.Viewport()

	for i, e := range c.Equations {
		eq, err := e.toScene(i)
		if err != nil {
			return s, fmt.Errorf("equations[%d]: %w", i, err)
		}
		s.Equations = append(s.Equations, eq)
	}
	return s, nil
}

// Viewport is the initial view. A zero zoom means 1.
func (c *Config) Viewport() viewport.Viewport {
	zoom := c.View.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return viewport.New(viewport.Point{X: c.View.CenterX, Y: c.View.CenterY}, zoom)
}

func (e Equation) toScene(i int) (scene.Equation, error) {
	col := scene.DefaultColor(i)
	if e.Color != "" {
		c, err := scene.ParseHexColor(e.Color)
		if err != nil {
			return scene.Equation{}, err
		}
		col = c
	}
	style, err := scene.ParseLineStyle(e.LineStyle)
	if err != nil {
		return scene.Equation{}, err
	}

	eq := scene.NewEquation(e.Expression, col)
	eq.LineStyle = style
	if e.LineWidth > 0 {
		eq.LineWidth = e.LineWidth
	}
	if e.Visible != nil {
		eq.Visible = *e.Visible
	}
	return eq, nil
}
