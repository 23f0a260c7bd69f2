// Package driver runs one frame at a time: input, physics, the raycast sweep,
// an optional overlay, presentation and pacing.
package driver

import (
	"context"
	"errors"
	"fmt"

	"mirrorball/hal"
	"mirrorball/rt/physics"
	"mirrorball/rt/raycast"
	"mirrorball/rt/scene"
)

// ErrQuit is returned by Step when the quit control is held.
var ErrQuit = hal.ErrQuit

// FrameBudgetMicros is the pacing target when the frame limiter is on (60 Hz).
const FrameBudgetMicros = 16666

const titleEveryMicros = 1000000

// BounceSink receives the spheres that hit the floor during a frame.
type BounceSink func(b physics.Bounces, s *scene.Scene)

// Overlay draws on top of a rendered frame before it is presented.
type Overlay func(fb hal.Framebuffer, st Stats)

// Stats describes the frame loop as of the previous frame.
type Stats struct {
	Width, Height int
	FPS           int
	Frames        uint64
}

// Config tunes a Driver.
type Config struct {
	// LimitMicros is the per-frame budget. 0 runs unpaced.
	LimitMicros int64
	// Workers caps the render goroutines. 0 means one per CPU.
	Workers int
}

// Driver owns the scene and steps it against a HAL.
type Driver struct {
	h     hal.HAL
	fb    hal.Framebuffer
	clock hal.Clock
	in    hal.Input

	s   *scene.Scene
	r   raycast.Renderer
	cfg Config

	onBounce BounceSink
	overlay  Overlay

	fps       fpsMeter
	dt        float32
	lastTitle int64
	frames    uint64
}

// New returns a driver for s rendering into the HAL's framebuffer.
func New(h hal.HAL, s *scene.Scene, cfg Config) (*Driver, error) {
	if h == nil {
		return nil, errors.New("driver: nil hal")
	}
	if s == nil {
		return nil, errors.New("driver: nil scene")
	}
	disp := h.Display()
	if disp == nil {
		return nil, errors.New("driver: hal has no display")
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return nil, errors.New("driver: display has no framebuffer")
	}
	if fb.Format() != hal.PixelFormatXRGB8888 {
		return nil, fmt.Errorf("driver: unsupported pixel format %d", fb.Format())
	}
	if cfg.LimitMicros < 0 {
		return nil, fmt.Errorf("driver: invalid frame limit %d", cfg.LimitMicros)
	}
	clock := h.Clock()
	return &Driver{
		h:         h,
		fb:        fb,
		clock:     clock,
		in:        h.Input(),
		s:         s,
		r:         raycast.Renderer{Workers: cfg.Workers},
		cfg:       cfg,
		dt:        1,
		lastTitle: clock.Micros(),
	}, nil
}

// OnBounce installs fn as the bounce sink.
func (d *Driver) OnBounce(fn BounceSink) { d.onBounce = fn }

// SetOverlay installs fn as the frame overlay.
func (d *Driver) SetOverlay(fn Overlay) { d.overlay = fn }

func (d *Driver) Scene() *scene.Scene { return d.s }

// DT is the frame-length multiplier used by the next physics step.
func (d *Driver) DT() float32 { return d.dt }

func (d *Driver) Stats() Stats {
	return Stats{Width: d.fb.Width(), Height: d.fb.Height(), FPS: d.fps.avg(), Frames: d.frames}
}

// Step runs one frame. It returns ErrQuit when the user asked to leave.
func (d *Driver) Step(ctx context.Context) error {
	start := d.clock.Micros()

	var ctl physics.Controls
	if d.in != nil {
		ctl = controls(d.in.Poll())
	}
	if ctl.Quit {
		return ErrQuit
	}

	if b := physics.Step(d.s, &ctl, d.dt); b != 0 && d.onBounce != nil {
		d.onBounce(b, d.s)
	}

	w, h := d.fb.Width(), d.fb.Height()
	if err := d.r.Render(ctx, d.s, d.fb.Pixels(), w, h); err != nil {
		return err
	}
	if d.overlay != nil {
		d.overlay(d.fb, d.Stats())
	}
	if err := d.fb.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	if d.cfg.LimitMicros > 0 {
		if left := d.cfg.LimitMicros - (d.clock.Micros() - start); left > 0 {
			d.clock.Sleep(left)
		}
	}

	now := d.clock.Micros()
	took := now - start
	d.fps.add(took)
	d.dt = float32(took) * 60 / 1e6
	d.frames++

	if now-d.lastTitle >= titleEveryMicros {
		d.h.Display().SetTitle(Title(w, h, d.fps.avg()))
		d.lastTitle = now
	}
	return nil
}

// Title formats the window title for a w×h buffer at fps.
func Title(w, h, fps int) string {
	return fmt.Sprintf("%dx%d - %d fps", w, h, fps)
}

func controls(in hal.InputState) physics.Controls {
	return physics.Controls{
		Forward: in.Has(hal.ControlForward),
		Back:    in.Has(hal.ControlBack),
		Left:    in.Has(hal.ControlLeft),
		Right:   in.Has(hal.ControlRight),
		Ascend:  in.Has(hal.ControlAscend),
		Descend: in.Has(hal.ControlDescend),
		Quit:    in.Has(hal.ControlQuit),
		MouseDX: in.MouseDX,
		MouseDY: in.MouseDY,
	}
}

const fpsHistory = 8

// fpsMeter averages the last eight instantaneous rates. Unfilled slots count
// as zero, so the average ramps up over the first frames.
type fpsMeter struct {
	hist [fpsHistory]int
	next int
}

func (m *fpsMeter) add(us int64) {
	if us < 1 {
		us = 1
	}
	m.hist[m.next] = int(1000000 / us)
	m.next = (m.next + 1) % fpsHistory
}

func (m *fpsMeter) avg() int {
	sum := 0
	for _, v := range m.hist {
		sum += v
	}
	return sum / fpsHistory
}
