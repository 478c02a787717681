// Package fileprocessor handles file loading, output naming and writing operations
package fileprocessor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/tic80kit/tic80kit/internal/config"
	"github.com/tic80kit/tic80kit/internal/export"
	"github.com/tic80kit/tic80kit/internal/options"
	"github.com/tic80kit/tic80kit/internal/pipeline"
	"github.com/tic80kit/tic80kit/internal/render"
	"github.com/tic80kit/tic80kit/internal/verification"
)

// ProcessMap renders the map of the cartridge and writes all requested output
// files. Nothing is written if decoding fails. It returns the written file names.
func ProcessMap(logger *log.Logger, opts options.Map) ([]string, error) {
	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	layout, err := config.LoadLayout(opts.Layout)
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}

	p := pipeline.New(logger)
	doc, err := p.Load(opts.Common)
	if err != nil {
		return nil, err
	}

	result, err := p.Map(doc, opts, layout)
	if err != nil {
		return nil, fmt.Errorf("rendering map: %w", err)
	}

	output := opts.Output
	if output == "" {
		output = GenerateMapFilename(opts, format)
	}
	base := trimExtension(opts.Input)

	var written []string
	write := func(name string, encode func(w io.Writer) error) error {
		if err := writeFile(name, encode); err != nil {
			return err
		}
		logger.Info("Written", log.String("file", name))
		written = append(written, name)
		return nil
	}

	if err := write(output, func(w io.Writer) error {
		return render.Encode(w, result.Map, format)
	}); err != nil {
		return written, err
	}

	if result.Palette != nil {
		if err := write(base+"_palette"+format.Extension(), func(w io.Writer) error {
			return render.Encode(w, result.Palette, format)
		}); err != nil {
			return written, err
		}
	}

	if result.Tile != nil {
		name := base + "_tile_" + strconv.Itoa(opts.Tile) + format.Extension()
		if err := write(name, func(w io.Writer) error {
			return render.Encode(w, result.Tile, format)
		}); err != nil {
			return written, err
		}
	}

	if result.Tilemap != nil {
		if err := write(base+"_map.json", func(w io.Writer) error {
			return export.WriteTilemap(w, *result.Tilemap)
		}); err != nil {
			return written, err
		}
	}

	return written, nil
}

// ProcessTranspose transposes the selected patterns and writes the patched
// cartridge. It returns the written file name.
func ProcessTranspose(logger *log.Logger, opts options.Transpose) (string, error) {
	p := pipeline.New(logger)
	doc, err := p.Load(opts.Common)
	if err != nil {
		return "", err
	}

	patched, _, err := p.Transpose(doc, opts)
	if err != nil {
		return "", err
	}

	output := opts.Input
	if !opts.Overwrite {
		output = GenerateTransposeFilename(opts.Input)
	}

	if err := writeFile(output, func(w io.Writer) error {
		_, err := w.Write(patched.Bytes())
		return err
	}); err != nil {
		return "", err
	}
	logger.Info("Written", log.String("file", output))

	if opts.Verify {
		if err := verification.VerifyTranspose(logger, doc, patched, output, opts.Start, opts.End); err != nil {
			return output, fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}
	return output, nil
}

// GenerateMapFilename generates the map image filename for the input file, the
// enabled render options are appended as suffixes.
func GenerateMapFilename(opts options.Map, format render.Format) string {
	name := trimExtension(opts.Input)
	if opts.Numbers {
		name += "_numbers"
	}
	if opts.Borders {
		name += "_borders"
	}
	if opts.Hidden {
		name += "_hidden"
	}
	return name + format.Extension()
}

// GenerateTransposeFilename generates the output filename for a transposed cartridge.
func GenerateTransposeFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + "_transposed" + ext
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, name string, quiet bool, version, commit, date string) {
	if quiet {
		return
	}

	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

func trimExtension(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// writeFile encodes the complete content in memory and writes it with a single
// file write, an encoding error leaves no partial file behind.
func writeFile(name string, encode func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", name, err)
	}
	return nil
}
