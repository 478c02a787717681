package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/set"
	"github.com/tic80kit/tic80kit/internal/palette"
	"github.com/tic80kit/tic80kit/internal/tile"
	"github.com/tic80kit/tic80kit/internal/tilemap"
	"golang.org/x/image/draw"
)

var testPalette = palette.Palette{
	{R: 0, G: 0, B: 0},
	{R: 255, G: 0, B: 0},
	{R: 0, G: 255, B: 0},
}

type labelCall struct {
	x, y, code int
}

type mockLabeler struct {
	calls []labelCall
}

func (m *mockLabeler) Label(_ draw.Image, x, y, code int) {
	m.calls = append(m.calls, labelCall{x: x, y: y, code: code})
}

// testMap returns a map of 2x2 rooms filled with tile 1, all pixels of tile 1
// use palette index 1.
func testMap() (*tilemap.Grid, *tile.Table) {
	grid := tilemap.New(2*RoomWidth/tile.Size, 2*RoomHeight/tile.Size)
	for i := range grid.Cells {
		grid.Cells[i] = 1
	}
	tiles := &tile.Table{}
	for i := range tiles[1] {
		tiles[1][i] = 1
	}
	return grid, tiles
}

func newSet(values ...int) set.Set[int] {
	s := set.New[int]()
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func TestRoomCode(t *testing.T) {
	assert.Equal(t, 11, RoomCode(0, 0))
	assert.Equal(t, 12, RoomCode(RoomWidth, 0))
	assert.Equal(t, 21, RoomCode(RoomWidth-1, RoomHeight))
	assert.Equal(t, 88, RoomCode(8*RoomWidth-1, 8*RoomHeight-1))
}

func TestMapPlain(t *testing.T) {
	grid, tiles := testMap()
	img := Map(grid, tiles, testPalette, Options{})

	assert.Equal(t, 2*RoomWidth, img.Bounds().Dx())
	assert.Equal(t, 2*RoomHeight, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(RoomWidth-1, 0))
}

func TestMapBordersAndHidden(t *testing.T) {
	grid, tiles := testMap()
	img := Map(grid, tiles, testPalette, Options{
		Borders:     true,
		Hidden:      true,
		HiddenRooms: newSet(11),
		BorderColor: 2,
		HiddenColor: 0,
	})

	green := color.RGBA{G: 255, A: 255}
	assert.Equal(t, green, img.RGBAAt(RoomWidth-1, 5))
	assert.Equal(t, green, img.RGBAAt(5, RoomHeight-1))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(RoomWidth+5, 5))
}

func TestMapRemoveRooms(t *testing.T) {
	grid, tiles := testMap()

	img := Map(grid, tiles, testPalette, Options{
		Hidden:        true,
		HiddenRooms:   newSet(11),
		RemoveColumns: newSet(1),
		RemoveRows:    newSet(2),
	})
	assert.Equal(t, RoomWidth, img.Bounds().Dx())
	assert.Equal(t, RoomHeight, img.Bounds().Dy())
	// only room 12 is left
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))

	img = Map(grid, tiles, testPalette, Options{
		RemoveColumns: newSet(1),
	})
	assert.Equal(t, 2*RoomWidth, img.Bounds().Dx())
}

func TestMapNumbers(t *testing.T) {
	grid, tiles := testMap()
	labeler := &mockLabeler{}

	Map(grid, tiles, testPalette, Options{Numbers: true, Labeler: labeler})

	assert.Equal(t, []labelCall{
		{x: 0, y: 0, code: 11},
		{x: RoomWidth, y: 0, code: 12},
		{x: 0, y: RoomHeight, code: 21},
		{x: RoomWidth, y: RoomHeight, code: 22},
	}, labeler.calls)
}

func TestFontLabeler(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	red := color.RGBA{R: 208, G: 70, B: 72, A: 255}

	NewFontLabeler(red).Label(img, 0, 0, 11)

	found := false
	for y := range 20 {
		for x := range 40 {
			if img.RGBAAt(x, y) == red {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestPaletteImage(t *testing.T) {
	pal := make(palette.Palette, 10)
	pal[9] = palette.Color{B: 255}

	img := Palette(pal, 2)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(3, 3))
}

func TestTileImage(t *testing.T) {
	tl := tile.Tile{}
	tl[tile.Pixels-1] = 2

	img := Tile(&tl, testPalette, 3)
	assert.Equal(t, 24, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(23, 23))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(0, 0))
}

func TestEncode(t *testing.T) {
	img := Tile(&tile.Tile{}, testPalette, 1)

	var buf bytes.Buffer
	assert.NoError(t, Encode(&buf, img, PNG))
	decoded, err := png.Decode(&buf)
	assert.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	buf.Reset()
	assert.NoError(t, Encode(&buf, img, WebP))
	assert.Equal(t, "RIFF", string(buf.Bytes()[:4]))

	assert.Error(t, Encode(&buf, img, Format("bmp")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("WEBP")
	assert.NoError(t, err)
	assert.Equal(t, WebP, f)
	assert.Equal(t, ".webp", f.Extension())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
