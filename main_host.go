package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"mirrorball/app"
	"mirrorball/hal"
	"mirrorball/internal/config"
)

func main() {
	var hcfg hal.HeadlessConfig
	var acfg app.Config
	var cfgPath string
	flag.StringVar(&cfgPath, "config", config.DefaultPath, "Display settings file (created with defaults when missing).")
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode (0 = as fast as possible).")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&acfg.HUD, "hud", false, "Draw resolution and frame rate over the image.")
	flag.BoolVar(&acfg.Sound, "sound", false, "Play a tone when a sphere bounces.")
	flag.BoolVar(&acfg.Limit, "limit", false, "Pace frames to 60 per second.")
	flag.Int64Var(&acfg.Seed, "seed", 0, "Starting height seed (0 = from the clock).")
	flag.IntVar(&acfg.Workers, "workers", 0, "Render goroutines (0 = one per CPU).")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
	}
	bw, bh := cfg.BufferSize()

	newApp := func(h hal.HAL) (func() error, error) {
		return app.NewWithConfig(h, acfg)
	}

	if hcfg.Enabled {
		hcfg.Buffer = hal.Config{Width: bw, Height: bh}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	wcfg := hal.WindowConfig{
		Buffer:       hal.Config{Width: bw, Height: bh},
		WindowWidth:  cfg.Width,
		WindowHeight: cfg.Height,
		Fullscreen:   cfg.Fullscreen,
		Title:        "mirrorball",
	}
	if acfg.Sound {
		wcfg.Volume = 255
	}
	if err := hal.RunWindow(wcfg, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
