package section

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrSectionNotFound is returned when no start marker for a section exists.
	ErrSectionNotFound = errors.New("section not found")
	// ErrMalformedSection is returned for data lines that can not be parsed and for
	// sections without an end marker.
	ErrMalformedSection = errors.New("malformed section")
)

// Record is a single data line of a section.
type Record struct {
	Address int    // decimal address of the record within the section
	Payload string // hex payload
	Line    int    // zero based line index in the document

	addressText string
}

// Section is a parsed view of a named section of a document. The records are
// independent copies, changing them does not modify the document.
type Section struct {
	Name  string
	Start int // line index of the start marker
	End   int // line index of the end marker

	records []Record
	index   map[int]int
}

// Records returns the records in document order.
func (s *Section) Records() []Record {
	return append([]Record(nil), s.records...)
}

// Len returns the number of records.
func (s *Section) Len() int {
	return len(s.records)
}

// Payload returns the payload stored at the given address.
func (s *Section) Payload(address int) (string, bool) {
	i, ok := s.index[address]
	if !ok {
		return "", false
	}
	return s.records[i].Payload, true
}

// ReadSection locates the named section and parses all data lines between its
// start and end marker.
func (d *Document) ReadSection(name string) (*Section, error) {
	startMarker := d.commentPrefix + " <" + name + ">"
	endMarker := d.commentPrefix + " </" + name + ">"

	start := -1
	for i, line := range d.lines {
		if strings.HasPrefix(line, startMarker) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, name)
	}

	sec := &Section{
		Name:  name,
		Start: start,
		End:   -1,
		index: map[int]int{},
	}

	for i := start + 1; i < len(d.lines); i++ {
		line := d.lines[i]
		if strings.HasPrefix(line, endMarker) {
			sec.End = i
			return sec, nil
		}

		rec, err := d.parseRecord(line, i)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", name, err)
		}
		if _, ok := sec.index[rec.Address]; ok {
			return nil, fmt.Errorf("%w: section %s: duplicate address %d in line %d",
				ErrMalformedSection, name, rec.Address, i+1)
		}
		sec.index[rec.Address] = len(sec.records)
		sec.records = append(sec.records, rec)
	}

	return nil, fmt.Errorf("%w: section %s: missing end marker", ErrMalformedSection, name)
}

// WriteSection replaces the payloads of all records whose address is a key of
// values. Records without a new value and keys without a record are ignored. The
// number and order of lines does not change. It returns the rewritten addresses in
// document order.
func (d *Document) WriteSection(name string, values map[int]string) ([]int, error) {
	sec, err := d.ReadSection(name)
	if err != nil {
		return nil, err
	}

	var written []int
	for _, rec := range sec.records {
		payload, ok := values[rec.Address]
		if !ok {
			continue
		}
		d.lines[rec.Line] = d.commentPrefix + " " + rec.addressText + ":" + payload
		written = append(written, rec.Address)
	}
	return written, nil
}

// parseRecord parses a data line of the form "-- 012:payload".
func (d *Document) parseRecord(line string, lineIndex int) (Record, error) {
	rest, ok := strings.CutPrefix(line, d.commentPrefix+" ")
	if !ok {
		return Record{}, fmt.Errorf("%w: line %d is not a data line", ErrMalformedSection, lineIndex+1)
	}

	addressText, payload, ok := strings.Cut(rest, ":")
	if !ok {
		return Record{}, fmt.Errorf("%w: line %d has no address delimiter", ErrMalformedSection, lineIndex+1)
	}

	address, err := strconv.ParseUint(addressText, 10, 16)
	if err != nil {
		return Record{}, fmt.Errorf("%w: line %d has invalid address '%s'",
			ErrMalformedSection, lineIndex+1, addressText)
	}

	return Record{
		Address:     int(address),
		Payload:     strings.TrimRight(payload, " \t\r"),
		Line:        lineIndex,
		addressText: addressText,
	}, nil
}
