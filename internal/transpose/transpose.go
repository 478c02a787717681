// Package transpose shifts the notes of cartridge patterns by a number of semitones.
package transpose

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/tic80kit/tic80kit/internal/pattern"
	"github.com/tic80kit/tic80kit/internal/section"
)

const (
	semitonesPerOctave = 12
	maxNote            = 15

	// The octave field holds two parity bands, one octave up is a step of 2.
	octaveStep = 2
	minOctave  = 1
	maxOctave  = 14
)

// Engine transposes decoded patterns.
type Engine struct {
	logger *log.Logger
}

// Result describes the changes applied to a pattern.
type Result struct {
	Changed bool // at least one row was modified
	Clamped int  // number of rows whose octave had to be forced back into range
}

// Report describes a transposition applied to a document.
type Report struct {
	Patterns []int // 1-based numbers of the rewritten patterns
	Clamped  int
}

// New returns a new transposition engine.
func New(logger *log.Logger) *Engine {
	return &Engine{
		logger: logger,
	}
}

// Row transposes a single row by delta semitones. It returns whether the octave
// had to be clamped, in that case the resulting pitch is not the requested one.
func (e *Engine) Row(row *pattern.Row, delta int) bool {
	if !row.HasPitch() || delta == 0 {
		return false
	}

	// split first so that huge deltas can not overflow the note
	octaves := delta / semitonesPerOctave
	note := int(row[pattern.Note]) + delta%semitonesPerOctave
	octave := int(row[pattern.Octave])
	clamped := false

	if delta > 0 {
		if note > maxNote {
			note -= semitonesPerOctave
			octaves++
		}
		octave += octaveStep * limitOctaves(octaves)
		if octave > maxOctave {
			octave -= octaveStep * ((octave - maxOctave + 1) / octaveStep)
			clamped = true
		}
	} else {
		octaves = -octaves
		if note < pattern.NoteC {
			note += semitonesPerOctave
			octaves++
		}
		octave -= limitOctaves(octaves)
		if octave < minOctave {
			octave += octaveStep * ((minOctave - octave + 1) / octaveStep)
			clamped = true
		}
	}

	row[pattern.Note] = uint8(note)
	row[pattern.Octave] = uint8(octave)
	return clamped
}

// limitOctaves bounds an octave shift to a value that always ends up clamped while
// keeping its parity, which decides the parity band the clamp lands in.
func limitOctaves(octaves int) int {
	const limit = 2 * maxOctave
	if octaves <= limit {
		return octaves
	}
	return limit + octaves%2
}

// Pattern transposes all rows of the pattern in place.
func (e *Engine) Pattern(p *pattern.Pattern, delta int) Result {
	var result Result
	for i := range p {
		before := p[i]
		if e.Row(&p[i], delta) {
			result.Clamped++
			e.logger.Warn("Octave out of range, clamped",
				log.Int("row", i),
				log.Int("octave", int(p[i][pattern.Octave])))
		}
		if p[i] != before {
			result.Changed = true
		}
	}
	return result
}

// Apply transposes the patterns start..end (1-based, inclusive) of the document by
// delta semitones and writes the changed patterns back into the document. The range
// is validated before the document is modified.
func (e *Engine) Apply(doc *section.Document, start, end, delta int) (Report, error) {
	var report Report

	patterns, err := pattern.Get(e.logger, doc, start, end)
	if err != nil {
		return report, err
	}

	values := make(map[int]string, len(patterns))
	for _, indexed := range patterns {
		result := e.Pattern(indexed.Pattern, delta)
		report.Clamped += result.Clamped
		if !result.Changed {
			continue
		}

		encoded, err := pattern.Encode(indexed.Pattern)
		if err != nil {
			return report, fmt.Errorf("encoding pattern %d: %w", indexed.Number(), err)
		}
		values[indexed.Address] = encoded
	}

	written, err := doc.WriteSection(pattern.SectionName, values)
	if err != nil {
		return report, fmt.Errorf("writing patterns: %w", err)
	}

	for _, address := range written {
		report.Patterns = append(report.Patterns, address+1)
		e.logger.Debug("Pattern modified", log.Int("pattern", address+1))
	}
	return report, nil
}
