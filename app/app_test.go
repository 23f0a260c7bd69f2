package app

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"

	"mirrorball/hal"
	"mirrorball/rt/driver"
	"mirrorball/rt/physics"
	"mirrorball/rt/scene"
)

type testFB struct {
	w, h int
	pix  []uint32
}

func newTestFB(w, h int, fill uint32) *testFB {
	f := &testFB{w: w, h: h, pix: make([]uint32, w*h)}
	for i := range f.pix {
		f.pix[i] = fill
	}
	return f
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatXRGB8888 }
func (f *testFB) Pixels() []uint32        { return f.pix }
func (f *testFB) ClearRGB(r, g, b uint8)  {}
func (f *testFB) Present() error          { return nil }

func (f *testFB) at(x, y int) uint32 { return f.pix[y*f.w+x] }

type recordAudio struct {
	rate  int
	clips [][]int16
	err   error
}

func (a *recordAudio) SampleRate() int { return a.rate }

func (a *recordAudio) Play(pcm []int16) error {
	if a.err != nil {
		return a.err
	}
	a.clips = append(a.clips, pcm)
	return nil
}

type bufLogger struct{ lines []string }

func (l *bufLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *bufLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func TestHeadlessRun(t *testing.T) {
	var buf bytes.Buffer
	err := hal.RunHeadless(context.Background(), func(h hal.HAL) (func() error, error) {
		return NewWithConfig(h, Config{HUD: true, Sound: true, Workers: 2, Seed: 7})
	}, hal.HeadlessConfig{Buffer: hal.Config{Width: 48, Height: 27}, Ticks: 3, Log: &buf})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "mirrorball dev: 48x27 workers=2 seed=7") {
		t.Fatalf("missing startup line:\n%s", out)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	capture := func() []uint32 {
		fb, err := hal.Capture(context.Background(), func(h hal.HAL) (func() error, error) {
			return NewWithConfig(h, Config{Seed: 42})
		}, hal.HeadlessConfig{Buffer: hal.Config{Width: 40, Height: 24}, Ticks: 4, Log: &bytes.Buffer{}})
		if err != nil {
			t.Fatalf("Capture: %v", err)
		}
		return fb.Pixels()
	}
	a, b := capture(), capture()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d differs: %#x vs %#x", i, a[i], b[i])
		}
	}
}

func TestNewWithConfigErrors(t *testing.T) {
	if _, err := NewWithConfig(nil, Config{}); err == nil {
		t.Fatal("expected error for nil hal")
	}
}

func TestHUDText(t *testing.T) {
	got := hudText(driver.Stats{Width: 320, Height: 180, FPS: 59})
	if got != "320x180 59fps" {
		t.Fatalf("got %q", got)
	}
}

func TestDrawHUD(t *testing.T) {
	const bg = 0x123456
	fb := newTestFB(80, 16, bg)
	st := driver.Stats{Width: 64, Height: 16, FPS: 0}
	drawHUD(fb, st)

	// "64x16 0fps" is ten glyphs; the backdrop spans them plus the padding.
	boxW := 10*glyphAdvance - 1 + 2*hudPad
	boxX0, boxY0 := hudX-hudPad, hudY-hudPad
	boxY1 := boxY0 + glyphHeight + 2*hudPad

	lit := 0
	for y := 0; y < fb.h; y++ {
		for x := 0; x < fb.w; x++ {
			inside := x >= boxX0 && x < boxX0+boxW && y >= boxY0 && y < boxY1
			p := fb.at(x, y)
			switch {
			case !inside && p != bg:
				t.Fatalf("pixel (%d,%d) outside the HUD changed: %#x", x, y, p)
			case inside && p == 0xffffff:
				lit++
			case inside && p != 0:
				t.Fatalf("pixel (%d,%d) inside the HUD: %#x", x, y, p)
			}
		}
	}
	if lit == 0 {
		t.Fatal("no text pixels drawn")
	}
}

func TestGlyphDraw(t *testing.T) {
	fb := newTestFB(8, 8, 0)
	d := fbDisplay{fb: fb}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	hudFont.GetGlyph('1').Draw(d, 0, 6, white)
	// Top row of '1' is 0x04: only the middle column.
	for x := 0; x < glyphWidth; x++ {
		want := uint32(0)
		if x == 2 {
			want = 0xffffff
		}
		if got := fb.at(x, 0); got != want {
			t.Fatalf("(%d,0): got %#x want %#x", x, got, want)
		}
	}
	// Bottom row is 0x0e.
	for x := 1; x <= 3; x++ {
		if fb.at(x, 6) != 0xffffff {
			t.Fatalf("(%d,6) not lit", x)
		}
	}

	info := hudFont.GetGlyph('9').Info()
	if info.XAdvance != glyphAdvance || info.Rune != '9' {
		t.Fatalf("info: %+v", info)
	}

	before := append([]uint32(nil), fb.pix...)
	hudFont.GetGlyph('?').Draw(d, 0, 6, white)
	for i := range before {
		if fb.pix[i] != before[i] {
			t.Fatal("unknown rune must draw nothing")
		}
	}
}

func TestFBDisplayClips(t *testing.T) {
	fb := newTestFB(2, 2, 0)
	d := fbDisplay{fb: fb}
	c := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	d.SetPixel(-1, 0, c)
	d.SetPixel(0, 2, c)
	d.SetPixel(1, 1, c)
	if fb.pix[3] != 0x010203 {
		t.Fatalf("in-bounds pixel: %#x", fb.pix[3])
	}
	for i := 0; i < 3; i++ {
		if fb.pix[i] != 0 {
			t.Fatalf("pixel %d written out of bounds", i)
		}
	}
	if x, y := d.Size(); x != 2 || y != 2 {
		t.Fatalf("Size: %d,%d", x, y)
	}
}

func TestBounceClip(t *testing.T) {
	clip := bounceClip(0.5, 44100)
	if len(clip) != 3528 {
		t.Fatalf("len: got %d", len(clip))
	}
	if clip[0] != 0 {
		t.Fatalf("clip must start at zero: %d", clip[0])
	}
	peak := func(p []int16) int16 {
		var m int16
		for _, v := range p {
			if v > m {
				m = v
			}
		}
		return m
	}
	if head, tail := peak(clip[:500]), peak(clip[len(clip)-500:]); tail >= head {
		t.Fatalf("clip must decay: head=%d tail=%d", head, tail)
	}

	crossings := func(p []int16) int {
		n := 0
		for i := 1; i < len(p); i++ {
			if (p[i-1] < 0) != (p[i] < 0) {
				n++
			}
		}
		return n
	}
	if big, small := crossings(bounceClip(0.6, 44100)), crossings(bounceClip(0.2, 44100)); big >= small {
		t.Fatalf("larger spheres must sound lower: %d vs %d crossings", big, small)
	}

	if bounceClip(0.5, 0) != nil || bounceClip(0, 44100) != nil {
		t.Fatal("degenerate clip must be nil")
	}
}

func TestBounceSoundMixes(t *testing.T) {
	s := scene.New(90, nil)
	aud := &recordAudio{rate: 8000}
	b := newBounceSound(aud, nil, s)

	b.sink(0, s)
	if len(aud.clips) != 0 {
		t.Fatal("no bounces must play nothing")
	}

	b.sink(physics.Bounces(1<<0|1<<3), s)
	if len(aud.clips) != 1 {
		t.Fatalf("plays: got %d want 1", len(aud.clips))
	}
	got := aud.clips[0]
	if len(got) != len(b.clips[0]) {
		t.Fatalf("len: got %d", len(got))
	}
	for i := range got {
		want := int32(b.clips[0][i]) + int32(b.clips[3][i])
		if int32(got[i]) != want {
			t.Fatalf("sample %d: got %d want %d", i, got[i], want)
		}
	}
}

func TestBounceSoundDisablesOnError(t *testing.T) {
	s := scene.New(90, nil)
	log := &bufLogger{}
	aud := &recordAudio{rate: 8000, err: errors.New("device gone")}
	b := newBounceSound(aud, log, s)

	b.sink(1, s)
	b.sink(1, s)
	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "device gone") {
		t.Fatalf("log: %v", log.lines)
	}

	quiet := &bufLogger{}
	b = newBounceSound(&recordAudio{rate: 8000, err: hal.ErrNotImplemented}, quiet, s)
	b.sink(1, s)
	if len(quiet.lines) != 0 {
		t.Fatalf("missing audio must be silent: %v", quiet.lines)
	}
}

func TestBounceSoundWithoutAudio(t *testing.T) {
	s := scene.New(90, nil)
	b := newBounceSound(nil, nil, s)
	b.sink(0x3f, s)
	if !b.off {
		t.Fatal("expected sound off without audio")
	}
}
