// Package app is the plotter session: it owns the scene, turns keyboard and pointer
// events into view changes and tangent picks, and renders into the HAL framebuffer.
package app

import (
	"go.uber.org/zap"

	"github.com/PriyathamGoroju/graphing/graph/tangent"
	"github.com/PriyathamGoroju/graphing/graph/viewport"
	"github.com/PriyathamGoroju/graphing/hal"
	"github.com/PriyathamGoroju/graphing/internal/config"
)

// ConfigSource delivers reloaded configurations. *config.Watcher implements it.
type ConfigSource interface {
	Changes() <-chan *config.Config
}

// Options configures a Plotter. All fields are optional.
type Options struct {
	Logger *zap.Logger
	// Level is adjusted when a reloaded configuration changes log.level.
	Level *zap.AtomicLevel

	// Config is the startup configuration. Nil means config.Default().
	Config *config.Config
	// Reloads, when set, is drained on every Step.
	Reloads ConfigSource

	// ExportDir receives the PNG snapshots taken with the p key. Empty means the
	// working directory.
	ExportDir string

	OnViewportChange func(viewport.Viewport)
	// OnTangent is called with the new tangent, or nil when it is cleared.
	OnTangent func(*tangent.Point)
}

// New builds a Plotter on h and returns its step function, in the form the hal
// runners expect.
func New(h hal.HAL, opts Options) func() error {
	return NewPlotter(h, opts).Step
}
