// Package pipeline orchestrates the decoding and transformation stages of the tools.
package pipeline

import (
	"fmt"
	"image"
	"image/color"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"github.com/tic80kit/tic80kit/internal/config"
	"github.com/tic80kit/tic80kit/internal/detector"
	"github.com/tic80kit/tic80kit/internal/export"
	"github.com/tic80kit/tic80kit/internal/loader"
	"github.com/tic80kit/tic80kit/internal/options"
	"github.com/tic80kit/tic80kit/internal/palette"
	"github.com/tic80kit/tic80kit/internal/render"
	"github.com/tic80kit/tic80kit/internal/section"
	"github.com/tic80kit/tic80kit/internal/tile"
	"github.com/tic80kit/tic80kit/internal/tilemap"
	"github.com/tic80kit/tic80kit/internal/transpose"
)

// Pipeline orchestrates the complete tool workflows.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// Assets contains the decoded graphics of a cartridge.
type Assets struct {
	Palette palette.Palette
	Tiles   *tile.Table
	Map     *tilemap.Grid
}

// MapResult contains the images and exports produced from a cartridge.
type MapResult struct {
	Map     *image.RGBA
	Palette *image.RGBA     // nil unless requested
	Tile    *image.RGBA     // nil unless requested
	Tilemap *export.Tilemap // nil unless requested
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Load reads the cartridge file using the explicit comment prefix or the one
// detected from the file extension.
func (p *Pipeline) Load(opts options.Common) (*section.Document, error) {
	prefix := p.detector.CommentPrefix(opts.CommentPrefix, opts.Input)
	doc, err := p.loader.Load(opts.Input, prefix)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}
	return doc, nil
}

// DecodeAssets decodes palette, tiles and map of the cartridge. The palette swaps
// of the layout are applied to the palette.
func (p *Pipeline) DecodeAssets(doc *section.Document, layout config.Layout) (*Assets, error) {
	paletteSection, err := doc.ReadSection(palette.SectionName)
	if err != nil {
		return nil, fmt.Errorf("reading palette: %w", err)
	}
	transforms := make([]palette.Transform, 0, len(layout.PaletteSwaps))
	for _, swap := range layout.PaletteSwaps {
		transforms = append(transforms, palette.SwapIndex(swap.To, swap.From))
	}
	pal, err := palette.FromSection(paletteSection, transforms...)
	if err != nil {
		return nil, fmt.Errorf("decoding palette: %w", err)
	}

	tileSection, err := doc.ReadSection(tile.SectionName)
	if err != nil {
		return nil, fmt.Errorf("reading tiles: %w", err)
	}
	tiles, err := tile.DecodeTable(tileSection)
	if err != nil {
		return nil, fmt.Errorf("decoding tiles: %w", err)
	}

	mapSection, err := doc.ReadSection(tilemap.SectionName)
	if err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	grid, err := tilemap.Decode(mapSection, tilemap.Width, tilemap.Height)
	if err != nil {
		return nil, fmt.Errorf("decoding map: %w", err)
	}

	p.logger.Debug("Decoded assets",
		log.Int("colors", len(pal)),
		log.Int("tiles", tileSection.Len()),
		log.Int("mapRows", mapSection.Len()))

	return &Assets{
		Palette: pal,
		Tiles:   tiles,
		Map:     grid,
	}, nil
}

// Map renders the map of the cartridge and the additionally requested exports.
func (p *Pipeline) Map(doc *section.Document, opts options.Map, layout config.Layout) (*MapResult, error) {
	assets, err := p.DecodeAssets(doc, layout)
	if err != nil {
		return nil, err
	}

	if opts.Tile >= tile.Count {
		return nil, fmt.Errorf("tile id %d out of range", opts.Tile)
	}

	renderOpts := render.Options{
		Borders:       opts.Borders,
		Hidden:        opts.Hidden,
		Numbers:       opts.Numbers,
		HiddenRooms:   newSet(layout.HiddenRooms),
		RemoveColumns: newSet(layout.RemoveColumns),
		RemoveRows:    newSet(layout.RemoveRows),
		BorderColor:   layout.BorderColor,
		HiddenColor:   layout.HiddenColor,
	}
	if opts.Numbers {
		c := layout.LabelColor
		renderOpts.Labeler = render.NewFontLabeler(color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff})
	}

	result := &MapResult{
		Map: render.Map(assets.Map, assets.Tiles, assets.Palette, renderOpts),
	}
	p.logger.Info("Rendered map",
		log.Int("width", result.Map.Bounds().Dx()),
		log.Int("height", result.Map.Bounds().Dy()))

	if opts.Palette {
		result.Palette = render.Palette(assets.Palette, opts.Scale)
	}
	if opts.Tile >= 0 {
		result.Tile = render.Tile(&assets.Tiles[opts.Tile], assets.Palette, opts.Scale)
	}
	if opts.JSON {
		tm := export.NewTilemap(assets.Map, assets.Palette)
		result.Tilemap = &tm
	}
	return result, nil
}

// Transpose transposes the selected patterns of the cartridge. The input document
// is not modified, the patched copy is returned.
func (p *Pipeline) Transpose(doc *section.Document, opts options.Transpose) (*section.Document, transpose.Report, error) {
	patched := doc.Clone()
	engine := transpose.New(p.logger)

	report, err := engine.Apply(patched, opts.Start, opts.End, opts.Semitones)
	if err != nil {
		return nil, report, fmt.Errorf("transposing patterns: %w", err)
	}

	p.logger.Info("Transposed patterns",
		log.Int("semitones", opts.Semitones),
		log.Int("modified", len(report.Patterns)))
	if report.Clamped > 0 {
		p.logger.Warn("Octaves out of range were clamped, pitch of these rows is not exact",
			log.Int("rows", report.Clamped))
	}
	return patched, report, nil
}

func newSet(values []int) set.Set[int] {
	s := set.New[int]()
	for _, v := range values {
		s.Add(v)
	}
	return s
}
