// Package palette decodes the PALETTE section of a cartridge.
//
// The palette is stored as a single record at address 0, every color takes 3 bytes
// written as 6 hex characters in R, G, B order. Unlike tile and map data the bytes are
// read in natural order, the high nibble comes first.
package palette

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tic80kit/tic80kit/internal/section"
)

// SectionName is the name of the cartridge section holding the palette.
const SectionName = "PALETTE"

const colorChars = 6

// ErrInvalidPayload is returned for palette data that is not a sequence of hex colors.
var ErrInvalidPayload = errors.New("invalid palette payload")

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Palette is an ordered list of colors, a pixel value is an index into it.
type Palette []Color

// Transform is applied to a decoded palette, it returns the palette to use.
type Transform func(Palette) Palette

// Decode parses a palette payload.
func Decode(payload string) (Palette, error) {
	if len(payload)%colorChars != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrInvalidPayload, len(payload), colorChars)
	}

	pal := make(Palette, 0, len(payload)/colorChars)
	for i := 0; i < len(payload); i += colorChars {
		var rgb [3]uint8
		for j := range rgb {
			offset := i + j*2
			value, err := strconv.ParseUint(payload[offset:offset+2], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: color %d: %w", ErrInvalidPayload, i/colorChars, err)
			}
			rgb[j] = uint8(value)
		}
		pal = append(pal, Color{R: rgb[0], G: rgb[1], B: rgb[2]})
	}
	return pal, nil
}

// FromSection decodes the palette stored at address 0 of the section and applies
// the transforms in the given order.
func FromSection(sec *section.Section, transforms ...Transform) (Palette, error) {
	payload, ok := sec.Payload(0)
	if !ok {
		return nil, fmt.Errorf("%w: no palette at address 0", ErrInvalidPayload)
	}

	pal, err := Decode(payload)
	if err != nil {
		return nil, err
	}

	for _, transform := range transforms {
		pal = transform(pal)
	}
	return pal, nil
}

// SwapIndex returns a transform that replaces the color at index dst with the color
// at index src. Indexes outside of the palette leave it unchanged. The returned
// palette is a copy.
func SwapIndex(dst, src int) Transform {
	return func(pal Palette) Palette {
		result := append(Palette(nil), pal...)
		if dst < 0 || dst >= len(result) || src < 0 || src >= len(result) {
			return result
		}
		result[dst] = result[src]
		return result
	}
}

// Index returns the color at the given index, black for indexes outside the palette.
func (p Palette) Index(i int) Color {
	if i < 0 || i >= len(p) {
		return Color{}
	}
	return p[i]
}
