package hal

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
}

// RunHeadless drives the app step function from a ticker without opening a window.
// It returns after cfg.Ticks steps (0 means until ctx is done) or on the first step error.
func RunHeadless(ctx context.Context, opts Options, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	opts = opts.withDefaults()

	h := newHost(opts)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	h.log.Info("headless host started",
		zap.Int("width", h.fb.Width()),
		zap.Int("height", h.fb.Height()),
		zap.Int("hz", cfg.Hz),
		zap.Uint64("ticks", cfg.Ticks),
	)

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
