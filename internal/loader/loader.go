// Package loader handles cartridge file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/tic80kit/tic80kit/internal/section"
)

// Loader handles loading cartridge files from disk.
type Loader struct{}

// New creates a new cartridge loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a text cartridge file. Section and data lines are expected to start
// with the given comment prefix.
func (l *Loader) Load(path, commentPrefix string) (*section.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return l.LoadFromBytes(data, commentPrefix), nil
}

// LoadFromBytes parses cartridge data that is already in memory.
func (l *Loader) LoadFromBytes(data []byte, commentPrefix string) *section.Document {
	doc := section.Parse(data)
	if commentPrefix != "" {
		doc.SetCommentPrefix(commentPrefix)
	}
	return doc
}
