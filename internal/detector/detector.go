// Package detector handles cartridge language detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/tic80kit/tic80kit/internal/section"
)

// Detector determines the comment marker used by the data lines of a cartridge.
// TIC-80 stores the asset sections as comments of the cartridge script language.
type Detector struct {
	logger *log.Logger
}

// New creates a new cartridge language detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// CommentPrefix returns the explicitly configured prefix if set, otherwise it
// detects the prefix from the input filename extension.
func (d *Detector) CommentPrefix(explicit, filename string) string {
	if explicit != "" {
		return explicit
	}

	prefix := detectFromFile(filename)
	d.logger.Debug("Auto-detected comment prefix",
		log.String("prefix", prefix),
		log.String("file", filename))
	return prefix
}

// detectFromFile determines the comment marker based on file extension.
func detectFromFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".js", ".wren", ".nut":
		return "//"
	case ".fnl":
		return ";;"
	case ".py", ".rb":
		return "#"
	default:
		// Lua and Moonscript, also used for unknown extensions
		return section.DefaultCommentPrefix
	}
}
