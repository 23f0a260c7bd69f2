package app

import (
	"fmt"
	"image/color"

	"mirrorball/hal"
	"mirrorball/rt/driver"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	hudX      = 2
	hudY      = 2
	hudPad    = 1
	hudMaxLen = 24
)

var (
	hudFG = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hudBG = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// hudText is the overlay line for a frame.
func hudText(st driver.Stats) string {
	return fmt.Sprintf("%dx%d %dfps", st.Width, st.Height, st.FPS)
}

// drawHUD paints the resolution and frame rate in the top-left corner.
func drawHUD(fb hal.Framebuffer, st driver.Stats) {
	s := hudText(st)
	if len(s) > hudMaxLen {
		s = s[:hudMaxLen]
	}
	d := fbDisplay{fb: fb}

	w := int16(len(s))*glyphAdvance - 1
	fillRect(d, hudX-hudPad, hudY-hudPad, w+2*hudPad, glyphHeight+2*hudPad, hudBG)
	// WriteLine takes the baseline, which is the glyph's bottom row.
	tinyfont.WriteLine(d, hudFont, hudX, hudY+glyphHeight-1, s, hudFG)
}

func fillRect(d drivers.Displayer, x0, y0, w, h int16, c color.RGBA) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			d.SetPixel(x, y, c)
		}
	}
}

// fbDisplay lets tinyfont draw into a packed-RGB framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

func (d fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatXRGB8888 {
		return
	}
	w, h := d.fb.Width(), d.fb.Height()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}
	pix := d.fb.Pixels()
	off := iy*w + ix
	if off >= len(pix) {
		return
	}
	pix[off] = uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (d fbDisplay) Display() error { return nil }
