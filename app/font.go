package app

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	glyphWidth   = 5
	glyphHeight  = 7
	glyphAdvance = 6
)

// hudFont is a 5x7 bitmap font covering the HUD's alphabet: digits, space,
// 'x', "fps" and '-'. Other runes draw as blanks.
//
// Concurrent use is not safe because the glyph value is reused.
var hudFont tinyfont.Fonter = &font5x7{}

// Rows are stored top to bottom, bit4 is the leftmost pixel.
var glyphRows = map[rune][glyphHeight]uint8{
	'0': {0x0e, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0e},
	'1': {0x04, 0x0c, 0x04, 0x04, 0x04, 0x04, 0x0e},
	'2': {0x0e, 0x11, 0x01, 0x02, 0x04, 0x08, 0x1f},
	'3': {0x1f, 0x02, 0x04, 0x02, 0x01, 0x11, 0x0e},
	'4': {0x02, 0x06, 0x0a, 0x12, 0x1f, 0x02, 0x02},
	'5': {0x1f, 0x10, 0x1e, 0x01, 0x01, 0x11, 0x0e},
	'6': {0x06, 0x08, 0x10, 0x1e, 0x11, 0x11, 0x0e},
	'7': {0x1f, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8': {0x0e, 0x11, 0x11, 0x0e, 0x11, 0x11, 0x0e},
	'9': {0x0e, 0x11, 0x11, 0x0f, 0x01, 0x02, 0x0c},
	'x': {0x00, 0x00, 0x11, 0x0a, 0x04, 0x0a, 0x11},
	'f': {0x06, 0x09, 0x08, 0x1c, 0x08, 0x08, 0x08},
	'p': {0x00, 0x00, 0x1e, 0x11, 0x1e, 0x10, 0x10},
	's': {0x00, 0x00, 0x0f, 0x10, 0x0e, 0x01, 0x1e},
	'-': {0x00, 0x00, 0x00, 0x1f, 0x00, 0x00, 0x00},
}

type font5x7 struct {
	g glyph5x7
}

type glyph5x7 struct {
	r rune
}

// Draw paints the glyph with its bottom row on baseline y.
func (g *glyph5x7) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	rows, ok := glyphRows[g.r]
	if !ok {
		return
	}
	for row, bits := range rows {
		for col := 0; col < glyphWidth; col++ {
			if bits&(0x10>>col) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(glyphHeight-1-row), c)
		}
	}
}

func (g *glyph5x7) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    glyphWidth,
		Height:   glyphHeight,
		XAdvance: glyphAdvance,
		XOffset:  0,
		YOffset:  -(glyphHeight - 1),
	}
}

func (f *font5x7) GetYAdvance() uint8 { return glyphHeight + 1 }

func (f *font5x7) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}
