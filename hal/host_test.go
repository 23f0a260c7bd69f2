package hal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewRejectsBadSize(t *testing.T) {
	for _, cfg := range []Config{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(cfg); err == nil {
			t.Fatalf("New(%+v): expected error", cfg)
		}
	}
}

func TestFramebufferPresent(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	if fb.Format() != PixelFormatXRGB8888 {
		t.Fatalf("format: got %d", fb.Format())
	}
	fb.ClearRGB(1, 2, 3)

	dst := make([]uint32, 8)
	if n := fb.snapshot(dst); n != 0 {
		t.Fatalf("presents before Present: got %d", n)
	}
	if dst[0] != 0 {
		t.Fatalf("front changed before Present: %#x", dst[0])
	}

	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if n := fb.snapshot(dst); n != 1 {
		t.Fatalf("presents: got %d want 1", n)
	}
	for i, p := range dst {
		if p != 0x010203 {
			t.Fatalf("pixel %d: got %#x", i, p)
		}
	}

	fb.Pixels()[0] = 0xff0000
	fb.snapshot(dst)
	if dst[0] != 0x010203 {
		t.Fatalf("front must not track the back buffer: %#x", dst[0])
	}
}

func TestSnapshotRGBA(t *testing.T) {
	fb := newHostFramebuffer(2, 1)
	fb.Pixels()[0] = 0x102030
	fb.Pixels()[1] = 0xa0b0c0
	_ = fb.Present()

	pix := make([]byte, 8)
	fb.snapshotRGBA(pix)
	want := []byte{0x10, 0x20, 0x30, 0xff, 0xa0, 0xb0, 0xc0, 0xff}
	if !bytes.Equal(pix, want) {
		t.Fatalf("got %v want %v", pix, want)
	}
}

func TestToImage(t *testing.T) {
	fb := newHostFramebuffer(3, 2)
	fb.Pixels()[5] = packRGB(9, 8, 7)
	img := ToImage(fb)
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds: %v", img.Bounds())
	}
	c := img.RGBAAt(2, 1)
	if c.R != 9 || c.G != 8 || c.B != 7 || c.A != 0xff {
		t.Fatalf("pixel: %+v", c)
	}
}

func TestInputMouseDelta(t *testing.T) {
	in := newHostInput()

	in.apply(ControlForward, 100, 50)
	s := in.Poll()
	if !s.Has(ControlForward) || s.Has(ControlBack) {
		t.Fatalf("held: %b", s.Held)
	}
	if s.MouseDX != 0 || s.MouseDY != 0 {
		t.Fatalf("first sighting must not move: %v,%v", s.MouseDX, s.MouseDY)
	}

	in.apply(0, 103, 48)
	in.apply(ControlQuit, 110, 40)
	s = in.Poll()
	if s.MouseDX != 10 || s.MouseDY != -10 {
		t.Fatalf("delta: got %v,%v want 10,-10", s.MouseDX, s.MouseDY)
	}
	if !s.Has(ControlQuit) {
		t.Fatal("expected quit held")
	}

	s = in.Poll()
	if s.MouseDX != 0 || s.MouseDY != 0 {
		t.Fatalf("Poll must consume motion: %v,%v", s.MouseDX, s.MouseDY)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &hostLogger{w: &buf}
	l.WriteLineString("a")
	l.WriteLineBytes([]byte("b"))
	if got := buf.String(); got != "a\nb\n" {
		t.Fatalf("got %q", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	var buf bytes.Buffer
	h, err := newHost(Config{Width: 2, Height: 2}, &buf, nullAudio{})
	if err != nil {
		t.Fatalf("newHost: %v", err)
	}
	if _, ok := h.disp.takeTitle(); ok {
		t.Fatal("no title set yet")
	}
	h.Display().SetTitle("one")
	h.Display().SetTitle("two")
	if title, ok := h.disp.takeTitle(); !ok || title != "two" {
		t.Fatalf("takeTitle: %q %v", title, ok)
	}
	if _, ok := h.disp.takeTitle(); ok {
		t.Fatal("title must be consumed")
	}
	if buf.Len() != 0 {
		t.Fatalf("window mode must not echo titles: %q", buf.String())
	}
}

func TestNullAudio(t *testing.T) {
	if err := (nullAudio{}).Play([]int16{1}); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("got %v", err)
	}
}

func TestRunHeadlessTicks(t *testing.T) {
	var buf bytes.Buffer
	var steps int
	err := RunHeadless(context.Background(), func(h HAL) (func() error, error) {
		return func() error {
			steps++
			h.Display().SetTitle("frame")
			return nil
		}, nil
	}, HeadlessConfig{Buffer: Config{Width: 4, Height: 4}, Ticks: 5, Log: &buf})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 5 {
		t.Fatalf("steps: got %d want 5", steps)
	}
	if n := strings.Count(buf.String(), "title: frame\n"); n != 5 {
		t.Fatalf("echoed titles: got %d want 5", n)
	}
}

func TestRunHeadlessQuit(t *testing.T) {
	var steps int
	err := RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return func() error {
			steps++
			if steps == 3 {
				return ErrQuit
			}
			return nil
		}, nil
	}, HeadlessConfig{Buffer: Config{Width: 1, Height: 1}, Hz: 1000, Log: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("quit must end cleanly: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps: got %d", steps)
	}
}

func TestRunHeadlessErrors(t *testing.T) {
	boom := errors.New("boom")
	cfg := HeadlessConfig{Buffer: Config{Width: 1, Height: 1}, Log: &bytes.Buffer{}}

	err := RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return nil, boom
	}, cfg)
	if !errors.Is(err, boom) {
		t.Fatalf("init error: got %v", err)
	}

	err = RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return func() error { return boom }, nil
	}, cfg)
	if !errors.Is(err, boom) {
		t.Fatalf("step error: got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = RunHeadless(ctx, func(HAL) (func() error, error) {
		return func() error { return nil }, nil
	}, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancel: got %v", err)
	}

	bad := cfg
	bad.Hz = -1
	if err := RunHeadless(context.Background(), func(HAL) (func() error, error) { return nil, nil }, bad); err == nil {
		t.Fatal("expected error for negative hz")
	}
}

func TestCapture(t *testing.T) {
	fb, err := Capture(context.Background(), func(h HAL) (func() error, error) {
		fb := h.Display().Framebuffer()
		return func() error {
			fb.ClearRGB(0, 0, 200)
			return fb.Present()
		}, nil
	}, HeadlessConfig{Buffer: Config{Width: 3, Height: 3}, Ticks: 2, Log: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	for i, p := range fb.Pixels() {
		if p != 0x0000c8 {
			t.Fatalf("pixel %d: %#x", i, p)
		}
	}

	if _, err := Capture(context.Background(), nil, HeadlessConfig{Buffer: Config{Width: 1, Height: 1}}); err == nil {
		t.Fatal("expected error without tick count")
	}
}
