package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"pixelpad/app"
	"pixelpad/hal"
	"pixelpad/internal/buildinfo"
	"pixelpad/internal/config"

	"github.com/gogpu/gg"
)

func main() {
	var headless hal.HeadlessConfig
	var configPath, outDir string
	var debug, printConfig, version bool
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "", "Path to a TOML config file.")
	flag.StringVar(&outDir, "out", "", "Directory for captured images (overrides capture.dir).")
	flag.BoolVar(&debug, "debug", false, "Log renderer diagnostics to stderr.")
	flag.BoolVar(&printConfig, "print-config", false, "Print the effective config as TOML and exit.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if outDir != "" {
		cfg.Capture.Dir = outDir
	}
	if printConfig {
		if err := config.Encode(os.Stdout, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if debug {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	surface := app.Surface(cfg)
	hostCfg := hal.HostConfig{Width: surface.Width(), Height: surface.Height(), OutDir: cfg.Capture.Dir}

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		var sys *app.System
		err := hal.RunHeadless(ctx, hostCfg, headless, app.Builder(cfg, func(s *app.System) { sys = s }), nil)
		if sys != nil {
			sys.Stop()
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	err = hal.RunWindow(hal.WindowConfig{
		Host:  hostCfg,
		Title: "pixelpad",
		Scale: cfg.Window.Scale,
		TPS:   cfg.Window.TPS,
	}, app.Builder(cfg, nil))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
