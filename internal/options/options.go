// Package options contains the program options.
package options

// Common contains options shared by all tools.
type Common struct {
	Input         string // cartridge file
	CommentPrefix string // comment marker of data lines, detected from the file name if empty
	Debug         bool
	Quiet         bool
}

// Map options of the map rendering tool.
type Map struct {
	Common

	Output string // output image file, derived from the input name if empty
	Layout string // YAML layout configuration file
	Format string // output image format: png, webp

	Borders bool // draw borders between rooms
	Hidden  bool // hide the rooms listed in the layout
	Numbers bool // label rooms with their code

	Palette bool // additionally export the palette as image
	Tile    int  // additionally export the tile with this id as image, -1 to disable
	Scale   int  // pixel scale of palette and tile images
	JSON    bool // additionally export the tilemap as JSON
}

// Transpose options of the pattern transposition tool.
type Transpose struct {
	Common

	Start     int // first pattern, 1-based
	End       int // last pattern, 1-based inclusive
	Semitones int // transposition delta

	Overwrite bool // write back to the input file
	Verify    bool // re-read the written file and verify its content
}
