package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Buffer  Config
	// Hz is the tick rate. 0 runs frames back to back.
	Hz    int
	Ticks uint64
	// Log receives log lines; nil means stdout.
	Log io.Writer
}

// RunHeadless runs the app without opening a window. Titles go to the log.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	_, err := runHeadless(ctx, newApp, cfg)
	return err
}

func runHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) (*hostHAL, error) {
	if cfg.Hz < 0 {
		return nil, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	out := cfg.Log
	if out == nil {
		out = os.Stdout
	}

	h, err := newHost(cfg.Buffer, out, nullAudio{})
	if err != nil {
		return nil, err
	}
	h.disp.echo = true
	step, err := newApp(h)
	if err != nil {
		return h, fmt.Errorf("init app: %w", err)
	}

	var tickC <-chan time.Time
	if cfg.Hz > 0 {
		t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
		defer t.Stop()
		tickC = t.C
	}

	var tick uint64
	for {
		if tickC != nil {
			select {
			case <-ctx.Done():
				return h, ctx.Err()
			case <-tickC:
			}
		} else if err := ctx.Err(); err != nil {
			return h, err
		}

		if step != nil {
			if err := step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return h, nil
				}
				return h, err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return h, nil
		}
	}
}

// Capture runs the app headless for cfg.Ticks frames and returns the last
// presented frame.
func Capture(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) (Framebuffer, error) {
	if cfg.Ticks == 0 {
		return nil, errors.New("capture: tick count required")
	}
	h, err := runHeadless(ctx, newApp, cfg)
	if err != nil {
		return nil, err
	}
	fb := newHostFramebuffer(h.disp.fb.width, h.disp.fb.height)
	h.disp.fb.snapshot(fb.back)
	copy(fb.front, fb.back)
	return fb, nil
}
