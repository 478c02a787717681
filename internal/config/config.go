// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
	"gopkg.in/yaml.v3"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// PaletteSwap replaces the color at index To with the color at index From.
type PaletteSwap struct {
	To   int `yaml:"to"`
	From int `yaml:"from"`
}

// Layout configures how a cartridge map is rendered.
type Layout struct {
	HiddenRooms   []int         `yaml:"hidden_rooms"`   // room codes row*10+col, 1-based
	RemoveColumns []int         `yaml:"remove_columns"` // 1-based room columns cut out when hiding rooms
	RemoveRows    []int         `yaml:"remove_rows"`    // 1-based room rows cut out when hiding rooms
	PaletteSwaps  []PaletteSwap `yaml:"palette_swaps"`
	BorderColor   int           `yaml:"border_color"` // palette index
	HiddenColor   int           `yaml:"hidden_color"` // palette index
	LabelColor    [3]uint8      `yaml:"label_color"`
}

// DefaultLayout returns the layout used when no configuration file is given.
// The transparent palette entry 6 is rendered black.
func DefaultLayout() Layout {
	return Layout{
		HiddenRooms: []int{
			11, 12, 13, 14, 15, 16, 17, 18,
			21, 22, 26, 27, 28,
			31, 32, 37, 38,
			41, 42, 48,
			51, 52, 53, 54, 57, 58,
			61, 62, 63, 64, 65, 66, 67, 68,
			71, 72, 73, 74, 75, 76, 77, 78,
			81, 82, 83, 84, 85, 86, 87, 88,
		},
		RemoveColumns: []int{1, 2, 8},
		RemoveRows:    []int{1, 6, 7, 8},
		PaletteSwaps:  []PaletteSwap{{To: 6, From: 0}},
		BorderColor:   2,
		HiddenColor:   0,
		LabelColor:    [3]uint8{208, 70, 72},
	}
}

// LoadLayout reads a layout from a YAML file. Keys missing in the file keep
// their default values.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return layout, fmt.Errorf("opening layout file '%s': %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&layout); err != nil && !errors.Is(err, io.EOF) {
		return layout, fmt.Errorf("parsing layout file '%s': %w", path, err)
	}
	return layout, nil
}
