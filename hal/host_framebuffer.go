package hal

import "sync"

// hostFramebuffer is double-buffered: callers draw into back, Present copies
// it to front, and the window reads front.
type hostFramebuffer struct {
	width  int
	height int
	back   []uint32

	mu       sync.Mutex
	front    []uint32
	presents uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		back:   make([]uint32, width*height),
		front:  make([]uint32, width*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatXRGB8888 }
func (f *hostFramebuffer) Pixels() []uint32    { return f.back }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := packRGB(r, g, b)
	for i := range f.back {
		f.back[i] = pixel
	}
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.back)
	f.presents++
	return nil
}

// snapshotRGBA converts the presented frame into 4-byte RGBA pixels.
func (f *hostFramebuffer) snapshotRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.front {
		j := i * 4
		if j+3 >= len(dst) {
			return
		}
		dst[j+0], dst[j+1], dst[j+2] = unpackRGB(p)
		dst[j+3] = 0xFF
	}
}

// snapshot copies the presented frame.
func (f *hostFramebuffer) snapshot(dst []uint32) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
	return f.presents
}
