package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// Labeler draws the code of a room with its top-left corner at x, y.
type Labeler interface {
	Label(dst draw.Image, x, y, code int)
}

// FontLabeler draws room codes as text.
type FontLabeler struct {
	face font.Face
	src  image.Image
}

// NewFontLabeler returns a labeler drawing in the given color using an 8x16 font.
func NewFontLabeler(c color.Color) *FontLabeler {
	return &FontLabeler{
		face: inconsolata.Regular8x16,
		src:  image.NewUniform(c),
	}
}

// Label draws the code as two digits, the room row followed by the room column.
func (l *FontLabeler) Label(dst draw.Image, x, y, code int) {
	ascent := l.face.Metrics().Ascent.Ceil()
	drawer := font.Drawer{
		Dst:  dst,
		Src:  l.src,
		Face: l.face,
		Dot:  fixed.P(x+1, y+ascent),
	}
	drawer.DrawString(fmt.Sprintf("%02d", code))
}
