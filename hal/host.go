package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Config sizes the host framebuffer.
type Config struct {
	Width  int
	Height int
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	// Buffer is the logical framebuffer size; the window scales it to fit.
	Buffer Config
	// WindowWidth and WindowHeight are the initial window size.
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	Title        string
	// Volume is the audio volume, 0..255. 0 disables sound output.
	Volume uint8
}

type hostHAL struct {
	logger *hostLogger
	disp   *hostDisplay
	in     *hostInput
	clock  *hostClock
	aud    Audio
}

// New returns a host HAL implementation.
func New(cfg Config) (HAL, error) {
	return newHost(cfg, os.Stdout, nullAudio{})
}

func newHost(cfg Config, logOut io.Writer, aud Audio) (*hostHAL, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("hal: invalid framebuffer size %dx%d", cfg.Width, cfg.Height)
	}
	logger := &hostLogger{w: logOut}
	return &hostHAL{
		logger: logger,
		disp:   &hostDisplay{fb: newHostFramebuffer(cfg.Width, cfg.Height), log: logger},
		in:     newHostInput(),
		clock:  newHostClock(),
		aud:    aud,
	}, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) Input() Input     { return h.in }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) Audio() Audio     { return h.aud }

type hostDisplay struct {
	fb  *hostFramebuffer
	log *hostLogger

	mu      sync.Mutex
	title   string
	changed bool
	// echo mirrors titles to the log when there is no window to show them.
	echo bool
}

func (d *hostDisplay) Framebuffer() Framebuffer { return d.fb }

func (d *hostDisplay) SetTitle(title string) {
	d.mu.Lock()
	d.title = title
	d.changed = true
	echo := d.echo
	d.mu.Unlock()
	if echo {
		d.log.WriteLineString("title: " + title)
	}
}

// takeTitle returns the title if it changed since the last call.
func (d *hostDisplay) takeTitle() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.changed {
		return "", false
	}
	d.changed = false
	return d.title, true
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type nullAudio struct{}

func (nullAudio) SampleRate() int { return 0 }

func (nullAudio) Play(pcm []int16) error {
	_ = pcm
	return ErrNotImplemented
}
