// Package render composes decoded cartridge assets into images.
package render

import (
	"image"
	"image/color"

	"github.com/retroenv/retrogolib/set"
	"github.com/tic80kit/tic80kit/internal/palette"
	"github.com/tic80kit/tic80kit/internal/tile"
	"github.com/tic80kit/tic80kit/internal/tilemap"
	"golang.org/x/image/draw"
)

const (
	// RoomWidth is the width of a room (one TIC-80 screen) in pixels.
	RoomWidth = 240
	// RoomHeight is the height of a room in pixels.
	RoomHeight = 136
)

// Options controls the map rendering.
type Options struct {
	Borders bool // draw the last pixel row and column of every room in BorderColor
	Hidden  bool // blank hidden rooms and cut out RemoveColumns and RemoveRows
	Numbers bool // label every room with its code

	HiddenRooms   set.Set[int] // room codes row*10+col, 1-based
	RemoveColumns set.Set[int] // 1-based room columns
	RemoveRows    set.Set[int] // 1-based room rows
	BorderColor   int          // palette index
	HiddenColor   int          // palette index

	Labeler Labeler // required when Numbers is set
}

// RoomCode returns the code of the room containing the pixel, rows and columns
// are counted from 1.
func RoomCode(x, y int) int {
	return (y/RoomHeight+1)*10 + x/RoomWidth + 1
}

// Map renders the full map grid using the tile table and palette.
func Map(grid *tilemap.Grid, tiles *tile.Table, pal palette.Palette, opts Options) *image.RGBA {
	width := grid.Width * tile.Size
	height := grid.Height * tile.Size
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	colors := rgbaColors(pal)

	for y := range height {
		for x := range width {
			var index int
			switch {
			case opts.Borders && (x%RoomWidth == RoomWidth-1 || y%RoomHeight == RoomHeight-1):
				index = opts.BorderColor
			case opts.Hidden && opts.HiddenRooms.Contains(RoomCode(x, y)):
				index = opts.HiddenColor
			default:
				t := &tiles[grid.At(x/tile.Size, y/tile.Size)]
				index = int(t.At(x%tile.Size, y%tile.Size))
			}
			img.SetRGBA(x, y, colorAt(colors, index))
		}
	}

	if opts.Numbers && opts.Labeler != nil {
		labelRooms(img, opts.Labeler)
	}

	if !opts.Hidden {
		return img
	}
	return removeRooms(img, opts.RemoveColumns, opts.RemoveRows)
}

// Palette renders the palette as a strip of 8 colors per row, each color a square
// of scale pixels.
func Palette(pal palette.Palette, scale int) *image.RGBA {
	const perRow = 8
	rows := (len(pal) + perRow - 1) / perRow
	src := image.NewRGBA(image.Rect(0, 0, perRow, rows))
	for i, c := range pal {
		src.SetRGBA(i%perRow, i/perRow, rgba(c))
	}
	return scaleImage(src, scale)
}

// Tile renders a single tile, each pixel a square of scale pixels.
func Tile(t *tile.Tile, pal palette.Palette, scale int) *image.RGBA {
	colors := rgbaColors(pal)
	src := image.NewRGBA(image.Rect(0, 0, tile.Size, tile.Size))
	for y := range tile.Size {
		for x := range tile.Size {
			src.SetRGBA(x, y, colorAt(colors, int(t.At(x, y))))
		}
	}
	return scaleImage(src, scale)
}

func labelRooms(img *image.RGBA, labeler Labeler) {
	bounds := img.Bounds()
	for roomY := 0; roomY*RoomHeight < bounds.Dy(); roomY++ {
		for roomX := 0; roomX*RoomWidth < bounds.Dx(); roomX++ {
			code := RoomCode(roomX*RoomWidth, roomY*RoomHeight)
			labeler.Label(img, roomX*RoomWidth, roomY*RoomHeight, code)
		}
	}
}

// removeRooms returns a copy of the image without the given room columns and rows.
func removeRooms(img *image.RGBA, columns, rows set.Set[int]) *image.RGBA {
	bounds := img.Bounds()
	keptX := keptSpans(bounds.Dx(), RoomWidth, columns)
	keptY := keptSpans(bounds.Dy(), RoomHeight, rows)

	width, height := spansLength(keptX), spansLength(keptY)
	result := image.NewRGBA(image.Rect(0, 0, width, height))

	dstY := 0
	for _, sy := range keptY {
		dstX := 0
		for _, sx := range keptX {
			dst := image.Rect(dstX, dstY, dstX+sx.length(), dstY+sy.length())
			draw.Draw(result, dst, img, image.Pt(sx.start, sy.start), draw.Src)
			dstX += sx.length()
		}
		dstY += sy.length()
	}
	return result
}

type span struct {
	start, end int
}

func (s span) length() int {
	return s.end - s.start
}

// keptSpans returns the pixel ranges of all rooms along an axis that are not
// listed in removed.
func keptSpans(size, roomSize int, removed set.Set[int]) []span {
	var spans []span
	for room := 1; (room-1)*roomSize < size; room++ {
		if removed.Contains(room) {
			continue
		}
		s := span{start: (room - 1) * roomSize, end: min(room*roomSize, size)}
		spans = append(spans, s)
	}
	return spans
}

func spansLength(spans []span) int {
	length := 0
	for _, s := range spans {
		length += s.length()
	}
	return length
}

func scaleImage(src *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return src
	}
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

func rgba(c palette.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func rgbaColors(pal palette.Palette) []color.RGBA {
	colors := make([]color.RGBA, len(pal))
	for i, c := range pal {
		colors[i] = rgba(c)
	}
	return colors
}

// colorAt returns opaque black for indexes that are not part of the palette.
func colorAt(colors []color.RGBA, index int) color.RGBA {
	if index < 0 || index >= len(colors) {
		return color.RGBA{A: 0xff}
	}
	return colors[index]
}
