// Package pattern decodes and encodes the PATTERNS section of a cartridge.
//
// A pattern is stored as one record of 384 hex characters: 64 rows of 6 characters.
// Each character is an independent field read in natural order, no nibble swapping
// is applied, unlike tile and map data.
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/tic80kit/tic80kit/internal/section"
)

const (
	// SectionName is the name of the cartridge section holding the patterns.
	SectionName = "PATTERNS"
	// Rows is the number of rows of a pattern.
	Rows = 64
	// Fields is the number of fields of a row.
	Fields = 6
	// First is the lowest user facing pattern number.
	First = 1
	// Last is the highest user facing pattern number.
	Last = 60

	payloadChars = Rows * Fields
	maxField     = 0xf
)

// Field indexes of a row.
const (
	Note   = iota // 0 no note, 1 break, 4..15 pitch classes C..B
	Volume        // 15..0 descending
	Effect
	SfxLow
	SfxMid
	Octave // odd or even values 1..14 depending on the instrument
)

// Note values without pitch.
const (
	NoteNone  = 0
	NoteBreak = 1
	// NoteC is the note value of the lowest pitch class.
	NoteC = 4
)

var (
	// ErrRange is returned for pattern numbers outside of First..Last.
	ErrRange = errors.New("pattern number out of range")
	// ErrInvalidPayload is returned for pattern data that can not be decoded.
	ErrInvalidPayload = errors.New("invalid pattern payload")
	// ErrFieldRange is returned when encoding a field value that does not fit a nibble.
	ErrFieldRange = errors.New("pattern field out of range")
)

// Row is a single pattern row.
type Row [Fields]uint8

// Pattern contains the rows of one pattern.
type Pattern [Rows]Row

// Indexed is a decoded pattern together with its section address.
type Indexed struct {
	Address int
	Pattern *Pattern
}

// Number returns the user facing 1-based pattern number.
func (i Indexed) Number() int {
	return i.Address + 1
}

// HasPitch returns whether the row plays a note that can be transposed.
func (r Row) HasPitch() bool {
	return r[Note] != NoteNone && r[Note] != NoteBreak
}

// Decode parses a pattern payload.
func Decode(payload string) (*Pattern, error) {
	if len(payload) != payloadChars {
		return nil, fmt.Errorf("%w: length %d, expected %d", ErrInvalidPayload, len(payload), payloadChars)
	}

	p := &Pattern{}
	for i := range len(payload) {
		value, ok := hexValue(payload[i])
		if !ok {
			return nil, fmt.Errorf("%w: invalid character '%c' in row %d",
				ErrInvalidPayload, payload[i], i/Fields)
		}
		p[i/Fields][i%Fields] = value
	}
	return p, nil
}

// Encode serializes a pattern as lower case hex characters.
func Encode(p *Pattern) (string, error) {
	var sb strings.Builder
	sb.Grow(payloadChars)

	for i, row := range p {
		for j, value := range row {
			if value > maxField {
				return "", fmt.Errorf("%w: row %d field %d has value %d", ErrFieldRange, i, j, value)
			}
			sb.WriteByte(hexDigits[value])
		}
	}
	return sb.String(), nil
}

// NormalizeRange validates the 1-based inclusive pattern range. An end before the
// start is corrected to the start, coerced reports whether that happened.
func NormalizeRange(start, end int) (int, int, bool, error) {
	if start < First || start > Last || end < First || end > Last {
		return 0, 0, false, fmt.Errorf("%w: start %d and end %d must be within %d..%d",
			ErrRange, start, end, First, Last)
	}
	if end < start {
		return start, start, true, nil
	}
	return start, end, false, nil
}

// CheckRange validates the pattern range like NormalizeRange and logs a warning
// when the end had to be corrected.
func CheckRange(logger *log.Logger, start, end int) (int, int, error) {
	newStart, newEnd, coerced, err := NormalizeRange(start, end)
	if err != nil {
		return 0, 0, err
	}
	if coerced {
		logger.Warn("End pattern is before start pattern, using start as end",
			log.Int("start", start), log.Int("end", end))
	}
	return newStart, newEnd, nil
}

// Get decodes the patterns start..end (1-based, inclusive) of the document.
// Patterns without a record are skipped, cartridges omit empty patterns.
func Get(logger *log.Logger, doc *section.Document, start, end int) ([]Indexed, error) {
	start, end, err := CheckRange(logger, start, end)
	if err != nil {
		return nil, err
	}

	sec, err := doc.ReadSection(SectionName)
	if err != nil {
		return nil, fmt.Errorf("reading patterns: %w", err)
	}

	logger.Info("Getting patterns", log.Int("start", start), log.Int("end", end))

	var patterns []Indexed
	for address := start - 1; address < end; address++ {
		payload, ok := sec.Payload(address)
		if !ok {
			logger.Debug("Pattern is empty", log.Int("pattern", address+1))
			continue
		}

		p, err := Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding pattern %d: %w", address+1, err)
		}
		patterns = append(patterns, Indexed{Address: address, Pattern: p})
	}
	return patterns, nil
}

const hexDigits = "0123456789abcdef"

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
