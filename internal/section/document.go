// Package section implements the line based container format of TIC-80 text cartridges.
//
// Asset data is stored in comment lines grouped into named sections:
//
//	-- <TILES>
//	-- 001:eccccccccc888888caaaaaaaca888888
//	-- </TILES>
//
// Every data line carries a decimal address and a hex payload. The document keeps all
// lines verbatim so that a cartridge can be written back with only the patched lines
// changed.
package section

import (
	"bytes"
	"strings"
)

// DefaultCommentPrefix is the comment marker used by Lua and Moonscript cartridges.
const DefaultCommentPrefix = "--"

// Document is a cartridge loaded as an ordered sequence of text lines.
type Document struct {
	lines         []string
	endings       []string // terminator of every line, empty for a last line without newline
	commentPrefix string
}

// Parse splits the cartridge data into lines. The terminator of every line is
// recorded so that Bytes reproduces the input exactly, also for files that mix
// Unix and Windows line endings.
func Parse(data []byte) *Document {
	doc := &Document{
		commentPrefix: DefaultCommentPrefix,
	}

	text := string(data)
	for text != "" {
		line, rest, found := strings.Cut(text, "\n")
		ending := ""
		if found {
			ending = "\n"
			if trimmed, ok := strings.CutSuffix(line, "\r"); ok {
				line = trimmed
				ending = "\r\n"
			}
		}
		doc.lines = append(doc.lines, line)
		doc.endings = append(doc.endings, ending)
		text = rest
	}
	return doc
}

// SetCommentPrefix sets the comment marker that starts section and data lines,
// for example "//" for JavaScript cartridges.
func (d *Document) SetCommentPrefix(prefix string) {
	d.commentPrefix = prefix
}

// CommentPrefix returns the comment marker used to locate sections.
func (d *Document) CommentPrefix() string {
	return d.commentPrefix
}

// Lines returns a copy of the document lines without line endings.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Bytes serializes the document using the recorded line terminators.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for i, line := range d.lines {
		buf.WriteString(line)
		buf.WriteString(d.endings[i])
	}
	return buf.Bytes()
}

// Clone returns an independent copy of the document.
func (d *Document) Clone() *Document {
	clone := *d
	clone.lines = append([]string(nil), d.lines...)
	clone.endings = append([]string(nil), d.endings...)
	return &clone
}
