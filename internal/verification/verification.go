// Package verification verifies that a written cartridge only differs from the input
// in the pattern data lines.
package verification

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"github.com/tic80kit/tic80kit/internal/loader"
	"github.com/tic80kit/tic80kit/internal/pattern"
	"github.com/tic80kit/tic80kit/internal/section"
)

var errUnexpectedChange = errors.New("unexpected change")

// VerifyTranspose re-reads the written cartridge and checks that it matches the
// patched document, that only data lines of the patterns start..end (1-based,
// inclusive) differ from the original and that all selected patterns decode.
func VerifyTranspose(logger *log.Logger, original, patched *section.Document, outputPath string, start, end int) error {
	written, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("reading file for comparison: %w", err)
	}
	if err := checkBufferEqual(patched.Bytes(), written); err != nil {
		return fmt.Errorf("comparing written file: %w", err)
	}

	doc := loader.New().LoadFromBytes(written, patched.CommentPrefix())
	sec, err := doc.ReadSection(pattern.SectionName)
	if err != nil {
		return fmt.Errorf("reading written patterns: %w", err)
	}

	end = max(end, start)
	var selected []section.Record
	selectedLines := set.New[int]()
	for _, rec := range sec.Records() {
		if number := rec.Address + 1; number >= start && number <= end {
			selected = append(selected, rec)
			selectedLines.Add(rec.Line)
		}
	}

	before, after := original.Lines(), doc.Lines()
	if len(before) != len(after) {
		return fmt.Errorf("%w: line count changed from %d to %d", errUnexpectedChange, len(before), len(after))
	}

	changed := 0
	for i := range before {
		if before[i] == after[i] {
			continue
		}
		if !selectedLines.Contains(i) {
			return fmt.Errorf("%w: line %d is not data of patterns %d..%d",
				errUnexpectedChange, i+1, start, end)
		}
		changed++
	}

	for _, rec := range selected {
		if _, err := pattern.Decode(rec.Payload); err != nil {
			return fmt.Errorf("decoding written pattern %d: %w", rec.Address+1, err)
		}
	}

	logger.Debug("Verified written cartridge", log.Int("changedLines", changed))
	return nil
}

func checkBufferEqual(input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	firstDiff := -1
	for i := range input {
		if input[i] == output[i] {
			continue
		}
		diffs++
		if firstDiff == -1 {
			firstDiff = i
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches, first at offset %d", diffs, firstDiff)
}
