package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"

	"mirrorball/app"
	"mirrorball/hal"
)

func main() {
	var (
		width   = flag.Int("w", 320, "Image width.")
		height  = flag.Int("h", 180, "Image height.")
		frames  = flag.Uint64("frames", 30, "Frames to simulate before capturing.")
		seed    = flag.Int64("seed", 1, "Starting height seed.")
		workers = flag.Int("workers", 0, "Render goroutines (0 = one per CPU).")
		hud     = flag.Bool("hud", false, "Draw the HUD into the image.")
		outPath = flag.String("out", "frame.png", "Output PNG file.")
	)
	flag.Parse()

	if *width <= 0 || *height <= 0 || *frames == 0 {
		fatalf("usage: rtshot [-w 320] [-h 180] [-frames 30] [-seed 1] [-hud] -out frame.png")
	}

	if err := shoot(*outPath, *width, *height, *frames, app.Config{Seed: *seed, Workers: *workers, HUD: *hud}); err != nil {
		fatalf("rtshot: %v", err)
	}
}

func shoot(path string, w, h int, frames uint64, cfg app.Config) error {
	fb, err := hal.Capture(context.Background(), func(hw hal.HAL) (func() error, error) {
		return app.NewWithConfig(hw, cfg)
	}, hal.HeadlessConfig{
		Buffer: hal.Config{Width: w, Height: h},
		Ticks:  frames,
		Log:    os.Stderr,
	})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, hal.ToImage(fb)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
