// Package tilemap decodes the MAP section of a cartridge into a grid of tile ids.
package tilemap

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tic80kit/tic80kit/internal/section"
)

const (
	// SectionName is the name of the cartridge section holding the map.
	SectionName = "MAP"
	// Width is the number of map cells per row of a TIC-80 map.
	Width = 240
	// Height is the number of map rows of a TIC-80 map.
	Height = 136
)

// ErrInvalidPayload is returned for map data that can not be decoded.
var ErrInvalidPayload = errors.New("invalid map payload")

// Grid is a map of tile ids stored in row-major order.
type Grid struct {
	Width  int
	Height int
	Cells  []uint8
}

// New returns a grid of the given dimensions with all cells set to tile 0.
func New(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]uint8, width*height),
	}
}

// At returns the tile id of the cell at the given coordinates.
func (g *Grid) At(x, y int) uint8 {
	return g.Cells[y*g.Width+x]
}

// Row returns the cells of a map row.
func (g *Grid) Row(y int) []uint8 {
	return g.Cells[y*g.Width : (y+1)*g.Width]
}

// DecodeRow parses a map row payload. Every byte is a tile id written nibble
// swapped: the second character is the high nibble and the first character the
// low nibble, "0f" is tile 0xf0.
func DecodeRow(payload string) ([]uint8, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrInvalidPayload, len(payload))
	}

	cells := make([]uint8, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		swapped := string([]byte{payload[i+1], payload[i]})
		value, err := strconv.ParseUint(swapped, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %w", ErrInvalidPayload, i/2, err)
		}
		cells = append(cells, uint8(value))
	}
	return cells, nil
}

// Decode decodes the records of a MAP section into a grid, the record address is
// the row. Rows without a record and cells not covered by a short row stay 0.
func Decode(sec *section.Section, width, height int) (*Grid, error) {
	grid := New(width, height)
	for _, rec := range sec.Records() {
		if rec.Address >= height {
			return nil, fmt.Errorf("%w: row %d out of range", ErrInvalidPayload, rec.Address)
		}

		cells, err := DecodeRow(rec.Payload)
		if err != nil {
			return nil, fmt.Errorf("decoding map row %d: %w", rec.Address, err)
		}
		if len(cells) > width {
			return nil, fmt.Errorf("%w: row %d has %d cells, maximum is %d",
				ErrInvalidPayload, rec.Address, len(cells), width)
		}
		copy(grid.Row(rec.Address), cells)
	}
	return grid, nil
}
