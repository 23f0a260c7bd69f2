// Package app wires the scene, the frame driver and the optional extras to a HAL.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"mirrorball/hal"
	"mirrorball/internal/buildinfo"
	"mirrorball/rt/driver"
	"mirrorball/rt/scene"
)

type Config struct {
	// HUD draws the resolution and frame rate over the image.
	HUD bool
	// Sound plays a tone when a sphere bounces.
	Sound bool
	// Limit paces frames to 60 per second.
	Limit bool
	// Workers caps render goroutines. 0 uses every CPU.
	Workers int
	// Seed scatters the starting sphere heights. 0 picks one from the clock.
	Seed int64
}

// New starts the renderer with default config.
func New(h hal.HAL) (func() error, error) {
	return NewWithConfig(h, Config{})
}

// NewWithConfig builds the scene and driver for h and returns the per-frame step.
func NewWithConfig(h hal.HAL, cfg Config) (func() error, error) {
	d, err := newDriver(h, cfg)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	return func() error { return d.Step(ctx) }, nil
}

func newDriver(h hal.HAL, cfg Config) (*driver.Driver, error) {
	if h == nil {
		return nil, errors.New("app: nil hal")
	}
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, errors.New("app: no framebuffer")
	}
	fb := disp.Framebuffer()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := scene.New(fb.Height(), rand.New(rand.NewSource(seed)))

	dcfg := driver.Config{Workers: cfg.Workers}
	if cfg.Limit {
		dcfg.LimitMicros = driver.FrameBudgetMicros
	}
	d, err := driver.New(h, s, dcfg)
	if err != nil {
		return nil, fmt.Errorf("init driver: %w", err)
	}

	log := h.Logger()
	if cfg.HUD {
		d.SetOverlay(drawHUD)
	}
	if cfg.Sound {
		d.OnBounce(newBounceSound(h.Audio(), log, s).sink)
	}

	if log != nil {
		workers := cfg.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		log.WriteLineString(fmt.Sprintf("mirrorball %s: %dx%d workers=%d seed=%d limit=%t",
			buildinfo.Short(), fb.Width(), fb.Height(), workers, seed, cfg.Limit))
	}
	return d, nil
}
