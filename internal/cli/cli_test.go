package cli

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/tic80kit/tic80kit/internal/options"
)

//nolint:funlen // test functions can be long
func TestParseMapFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Map
	}{
		{
			name: "default flags",
			args: []string{"game.lua"},
			want: options.Map{Common: options.Common{Input: "game.lua"}, Format: "png", Tile: -1, Scale: 16},
		},
		{
			name: "render flags",
			args: []string{"--borders", "-hidden", "game.lua", "--numbers"},
			want: options.Map{
				Common:  options.Common{Input: "game.lua"},
				Format:  "png",
				Tile:    -1,
				Scale:   16,
				Borders: true,
				Hidden:  true,
				Numbers: true,
			},
		},
		{
			name: "export flags",
			args: []string{"-palette", "-tile", "17", "-scale", "4", "-json", "-format", "webp", "-o", "out.webp", "game.js", "-prefix", "//"},
			want: options.Map{
				Common:  options.Common{Input: "game.js", CommentPrefix: "//"},
				Output:  "out.webp",
				Format:  "webp",
				Palette: true,
				Tile:    17,
				Scale:   4,
				JSON:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMapFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMapFlagsErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
	}{
		{name: "no file", args: nil, wantUsage: true},
		{name: "two files", args: []string{"a.lua", "b.lua"}, wantUsage: true},
		{name: "unknown flag", args: []string{"-unknown", "a.lua"}, wantUsage: true},
		{name: "invalid scale", args: []string{"-scale", "0", "a.lua"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMapFlags(tt.args)
			assert.Error(t, err)
			var usageErr *UsageError
			assert.Equal(t, tt.wantUsage, errors.As(err, &usageErr))
		})
	}
}

func TestParseTransposeFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Transpose
	}{
		{
			name: "positional only",
			args: []string{"song.lua", "1", "4"},
			want: options.Transpose{Common: options.Common{Input: "song.lua"}, Start: 1, End: 4},
		},
		{
			name: "flags after positional arguments",
			args: []string{"song.lua", "3", "5", "--transpose", "-7", "--overwrite"},
			want: options.Transpose{
				Common:    options.Common{Input: "song.lua"},
				Start:     3,
				End:       5,
				Semitones: -7,
				Overwrite: true,
			},
		},
		{
			name: "flags first",
			args: []string{"-verify", "-debug", "-transpose", "12", "song.lua", "60", "1"},
			want: options.Transpose{
				Common:    options.Common{Input: "song.lua", Debug: true},
				Start:     60,
				End:       1,
				Semitones: 12,
				Verify:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransposeFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTransposeFlagsErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
	}{
		{name: "missing end", args: []string{"song.lua", "1"}, wantUsage: true},
		{name: "invalid start", args: []string{"song.lua", "x", "2"}},
		{name: "invalid end", args: []string{"song.lua", "1", "2.5"}},
		{name: "invalid semitones", args: []string{"-transpose", "up", "song.lua", "1", "2"}, wantUsage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTransposeFlags(tt.args)
			assert.Error(t, err)
			var usageErr *UsageError
			assert.Equal(t, tt.wantUsage, errors.As(err, &usageErr))
		})
	}
}
