package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// Format is an output image file format.
type Format string

// Supported output formats.
const (
	PNG  Format = "png"
	WebP Format = "webp"
)

// ParseFormat returns the format for the given name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case PNG, WebP:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported image format '%s'", name)
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Encode writes the image in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encoding webp: %w", err)
		}
	default:
		return fmt.Errorf("unsupported image format '%s'", format)
	}
	return nil
}
