// Package export writes decoded cartridge assets in JSON form for use in other tools.
package export

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/tic80kit/tic80kit/internal/palette"
	"github.com/tic80kit/tic80kit/internal/tilemap"
)

// Color is the JSON representation of a palette color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Tilemap is a tilemap in a game engine friendly format.
type Tilemap struct {
	Width   int     `json:"width"`  // in tiles
	Height  int     `json:"height"` // in tiles
	Palette []Color `json:"palette"`
	Data    []int   `json:"data"` // tile ids in row-major order
}

// NewTilemap converts a decoded map and palette.
func NewTilemap(grid *tilemap.Grid, pal palette.Palette) Tilemap {
	tm := Tilemap{
		Width:   grid.Width,
		Height:  grid.Height,
		Palette: make([]Color, len(pal)),
		Data:    make([]int, len(grid.Cells)),
	}
	for i, c := range pal {
		tm.Palette[i] = Color{R: c.R, G: c.G, B: c.B}
	}
	for i, cell := range grid.Cells {
		tm.Data[i] = int(cell)
	}
	return tm
}

// WriteTilemap writes the tilemap as JSON.
func WriteTilemap(w io.Writer, tm Tilemap) error {
	data, err := sonic.Marshal(tm)
	if err != nil {
		return fmt.Errorf("marshalling tilemap: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing tilemap: %w", err)
	}
	return nil
}

// ReadTilemap reads a tilemap written by WriteTilemap.
func ReadTilemap(data []byte) (Tilemap, error) {
	var tm Tilemap
	if err := sonic.Unmarshal(data, &tm); err != nil {
		return tm, fmt.Errorf("unmarshalling tilemap: %w", err)
	}
	return tm, nil
}
