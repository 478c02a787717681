// Package tile decodes the TILES section of a cartridge into 8x8 pixel tiles.
//
// Each record holds one tile, the address is the tile id. A pixel is a 4 bit palette
// index and every byte of the payload holds two pixels. The two hex characters of a
// byte are stored nibble swapped: the second character is the value of the first
// pixel and the first character is the value of the second pixel.
package tile

import (
	"errors"
	"fmt"

	"github.com/tic80kit/tic80kit/internal/section"
)

const (
	// SectionName is the name of the cartridge section holding the tiles.
	SectionName = "TILES"
	// Size is the width and height of a tile in pixels.
	Size = 8
	// Pixels is the number of pixels of a tile.
	Pixels = Size * Size
	// Count is the number of tiles in a tile table.
	Count = 256

	payloadChars = Pixels
)

// ErrInvalidPayload is returned for tile data that can not be decoded.
var ErrInvalidPayload = errors.New("invalid tile payload")

// Tile contains the palette indexes of all pixels in row-major order.
type Tile [Pixels]uint8

// Table contains all tiles of a cartridge indexed by tile id.
type Table [Count]Tile

// At returns the palette index of the pixel at the given tile coordinates.
func (t *Tile) At(x, y int) uint8 {
	return t[y*Size+x]
}

// Decode parses a tile payload. Pixels not covered by a short payload are 0.
func Decode(payload string) (Tile, error) {
	var t Tile
	if len(payload) > payloadChars {
		return t, fmt.Errorf("%w: length %d exceeds %d", ErrInvalidPayload, len(payload), payloadChars)
	}
	if len(payload)%2 != 0 {
		return t, fmt.Errorf("%w: odd length %d", ErrInvalidPayload, len(payload))
	}

	for i := 0; i < len(payload); i += 2 {
		first, ok := nibble(payload[i+1])
		if !ok {
			return t, fmt.Errorf("%w: invalid character '%c' at %d", ErrInvalidPayload, payload[i+1], i+1)
		}
		second, ok := nibble(payload[i])
		if !ok {
			return t, fmt.Errorf("%w: invalid character '%c' at %d", ErrInvalidPayload, payload[i], i)
		}
		t[i] = first
		t[i+1] = second
	}
	return t, nil
}

// DecodeTable decodes all records of a TILES section. Tiles without a record
// stay empty, cartridges omit unused tiles.
func DecodeTable(sec *section.Section) (*Table, error) {
	table := &Table{}
	for _, rec := range sec.Records() {
		if rec.Address >= Count {
			return nil, fmt.Errorf("%w: tile address %d out of range", ErrInvalidPayload, rec.Address)
		}

		t, err := Decode(rec.Payload)
		if err != nil {
			return nil, fmt.Errorf("decoding tile %d: %w", rec.Address, err)
		}
		table[rec.Address] = t
	}
	return table, nil
}

func nibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
