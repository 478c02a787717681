// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/tic80kit/tic80kit/internal/options"
	"github.com/tic80kit/tic80kit/internal/pattern"
)

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s\n\n", e.usage)
	e.flags.SetOutput(nil)
	e.flags.PrintDefaults()
	fmt.Println()
}

// ParseMapFlags parses the command line arguments of the map tool, args does not
// include the program name.
func ParseMapFlags(args []string) (options.Map, error) {
	flags := flag.NewFlagSet("mapify", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Map
	readCommonFlags(flags, &opts.Common)

	flags.StringVar(&opts.Output, "o", "", "name of the output image file, derived from the cartridge name if not given")
	flags.StringVar(&opts.Layout, "c", "", "YAML layout file configuring hidden rooms, removed rows and columns and colors")
	flags.StringVar(&opts.Format, "format", "png", "output image format (png/webp)")
	flags.BoolVar(&opts.Borders, "borders", false, "draw border lines between rooms")
	flags.BoolVar(&opts.Hidden, "hidden", false, "hide the rooms listed in the layout and remove their rows and columns")
	flags.BoolVar(&opts.Numbers, "numbers", false, "show room numbers")
	flags.BoolVar(&opts.Palette, "palette", false, "also export the palette as image")
	flags.IntVar(&opts.Tile, "tile", -1, "also export the tile with the given id as image")
	flags.IntVar(&opts.Scale, "scale", 16, "pixel scale of exported palette and tile images")
	flags.BoolVar(&opts.JSON, "json", false, "also export the tilemap as JSON")

	usage := "mapify [options] <cartridge file>"
	positional, err := parseInterspersed(flags, args)
	if err != nil {
		return opts, &UsageError{flags: flags, usage: usage, msg: err.Error()}
	}
	if len(positional) != 1 {
		return opts, &UsageError{flags: flags, usage: usage, msg: "expected exactly one cartridge file"}
	}
	opts.Input = positional[0]

	if opts.Scale < 1 {
		return opts, fmt.Errorf("invalid scale %d, must be at least 1", opts.Scale)
	}
	return opts, nil
}

// ParseTransposeFlags parses the command line arguments of the transpose tool,
// args does not include the program name.
func ParseTransposeFlags(args []string) (options.Transpose, error) {
	flags := flag.NewFlagSet("transpose", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Transpose
	readCommonFlags(flags, &opts.Common)

	flags.IntVar(&opts.Semitones, "transpose", 0, "number of semitones to transpose the patterns by, negative values transpose down")
	flags.BoolVar(&opts.Overwrite, "overwrite", false, "overwrite the cartridge instead of writing <name>_transposed<ext>")
	flags.BoolVar(&opts.Verify, "verify", false, "verify that the written cartridge only differs in pattern data")

	usage := fmt.Sprintf("transpose [options] <cartridge file> <start %d..%d> <end %d..%d>",
		pattern.First, pattern.Last, pattern.First, pattern.Last)
	positional, err := parseInterspersed(flags, args)
	if err != nil {
		return opts, &UsageError{flags: flags, usage: usage, msg: err.Error()}
	}
	if len(positional) != 3 {
		return opts, &UsageError{flags: flags, usage: usage, msg: "expected cartridge file, start and end pattern"}
	}
	opts.Input = positional[0]

	if opts.Start, err = strconv.Atoi(positional[1]); err != nil {
		return opts, fmt.Errorf("invalid start pattern '%s': %w", positional[1], err)
	}
	if opts.End, err = strconv.Atoi(positional[2]); err != nil {
		return opts, fmt.Errorf("invalid end pattern '%s': %w", positional[2], err)
	}
	return opts, nil
}

func readCommonFlags(flags *flag.FlagSet, opts *options.Common) {
	flags.StringVar(&opts.CommentPrefix, "prefix", "", "comment prefix of the cartridge data lines, detected from the file extension if not given")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// parseInterspersed parses flags that appear before, between or after the
// positional arguments and returns the positional arguments.
func parseInterspersed(flags *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			return nil, err
		}
		args = flags.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
