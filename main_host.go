package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/PriyathamGoroju/graphing/app"
	"github.com/PriyathamGoroju/graphing/hal"
	"github.com/PriyathamGoroju/graphing/internal/buildinfo"
	"github.com/PriyathamGoroju/graphing/internal/config"
	"github.com/PriyathamGoroju/graphing/internal/logging"
)

func main() {
	var (
		configPath string
		watch      bool
		headless   bool
		hz         int
		ticks      uint64
		logLevel   string
		version    bool
		outPath    string
		exportDir  string
		width      int
		height     int
		scale      float64
	)
	flag.StringVar(&configPath, "config", "", "Configuration file (.yaml, .yml or .toml).")
	flag.BoolVar(&watch, "watch", false, "Reload the configuration file when it changes.")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run until interrupted).")
	flag.StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides the configuration).")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.StringVar(&outPath, "out", "", "Write the final frame to this PNG file (implies -headless).")
	flag.StringVar(&exportDir, "export-dir", "", "Directory for snapshots taken with the p key.")
	flag.IntVar(&width, "width", 0, "Window width in logical pixels.")
	flag.IntVar(&height, "height", 0, "Window height in logical pixels.")
	flag.Float64Var(&scale, "scale", 0, "Device pixels per logical pixel (0 = follow the monitor).")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String("graphing"))
		return
	}

	cfg := config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			fatalf("config: %v", err)
		}
		cfg = c
	} else if watch {
		fatalf("-watch needs -config")
	}

	if logLevel == "" {
		logLevel = cfg.Log.Level
	}
	logger, level, err := logging.New(logging.Options{Level: logLevel})
	if err != nil {
		fatalf("log: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	opts := hal.Options{
		Title:  fmt.Sprintf("graphing %s", buildinfo.Short()),
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Scale:  cfg.Window.Scale,
		Logger: logger.Named("hal"),
	}
	if cfg.Window.Title != "" {
		opts.Title = cfg.Window.Title
	}
	if width > 0 {
		opts.Width = width
	}
	if height > 0 {
		opts.Height = height
	}
	if scale > 0 {
		opts.Scale = scale
	}

	appOpts := app.Options{
		Logger:    logger.Named("plotter"),
		Level:     &level,
		Config:    cfg,
		ExportDir: exportDir,
	}
	if watch {
		w, err := config.Watch(configPath, logger.Named("config"), config.DefaultDebounce)
		if err != nil {
			fatalf("watch: %v", err)
		}
		defer w.Close()
		appOpts.Reloads = w
	}

	var plotter *app.Plotter
	newApp := func(h hal.HAL) func() error {
		plotter = app.NewPlotter(h, appOpts)
		return plotter.Step
	}

	logger.Info("starting",
		zap.String("version", buildinfo.Short()),
		zap.String("config", configPath),
		zap.Int("equations", len(cfg.Equations)),
	)

	if outPath != "" {
		headless = true
		if ticks == 0 {
			ticks = 1
		}
	}

	if !headless {
		if err := hal.RunWindow(opts, newApp); err != nil {
			fatalf("window: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = hal.RunHeadless(ctx, opts, newApp, hal.HeadlessConfig{Hz: hz, Ticks: ticks})
	if err != nil && !errors.Is(err, context.Canceled) {
		fatalf("headless: %v", err)
	}
	if outPath != "" {
		if err := plotter.ExportPNG(outPath); err != nil {
			fatalf("export: %v", err)
		}
		logger.Info("frame written", zap.String("path", outPath))
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
