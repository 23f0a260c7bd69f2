package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrQuit is returned by an app step to end the run loop cleanly.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatXRGB8888 is one uint32 per pixel: 0x00RRGGBB.
	PixelFormatXRGB8888 PixelFormat = iota + 1
)

// Framebuffer is a back buffer plus a "present" hook.
//
// Pixels is row-major with no padding. The caller owns it between Present calls.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	Pixels() []uint32
	ClearRGB(r, g, b uint8)
	Present() error
}

// Control is a logical input bit.
type Control uint8

const (
	ControlForward Control = 1 << iota
	ControlBack
	ControlLeft
	ControlRight
	ControlAscend
	ControlDescend
	ControlQuit
)

// InputState is a snapshot of held controls and the mouse motion since the previous snapshot.
type InputState struct {
	Held             Control
	MouseDX, MouseDY float32
}

func (s InputState) Has(c Control) bool { return s.Held&c != 0 }

// Input provides input snapshots.
//
// Poll consumes the accumulated mouse motion.
type Input interface {
	Poll() InputState
}

// Display provides access to the framebuffer and the window title.
type Display interface {
	Framebuffer() Framebuffer
	SetTitle(title string)
}

// Clock is a monotonic microsecond clock.
type Clock interface {
	Micros() int64
	Sleep(us int64)
}

// Audio plays short mono PCM clips.
//
// Implementations without sound output return ErrNotImplemented from Play.
type Audio interface {
	SampleRate() int
	Play(pcm []int16) error
}

// HAL provides the only contact point between the renderer and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Clock() Clock
	Audio() Audio
}
