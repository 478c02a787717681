package transpose

import (
	"math"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/tic80kit/tic80kit/internal/pattern"
	"github.com/tic80kit/tic80kit/internal/section"
)

//nolint:funlen // test functions can be long
func TestRow(t *testing.T) {
	tests := []struct {
		name        string
		row         pattern.Row
		delta       int
		want        pattern.Row
		wantClamped bool
	}{
		{
			name:  "no note is not transposed",
			row:   pattern.Row{0, 0, 0, 0, 0, 3},
			delta: 5,
			want:  pattern.Row{0, 0, 0, 0, 0, 3},
		},
		{
			name:  "break is not transposed",
			row:   pattern.Row{1, 0, 0, 0, 0, 3},
			delta: -5,
			want:  pattern.Row{1, 0, 0, 0, 0, 3},
		},
		{
			name:  "up within octave",
			row:   pattern.Row{4, 15, 0, 1, 0, 3},
			delta: 2,
			want:  pattern.Row{6, 15, 0, 1, 0, 3},
		},
		{
			name:  "up with octave carry",
			row:   pattern.Row{14, 15, 0, 1, 0, 3},
			delta: 3,
			want:  pattern.Row{5, 15, 0, 1, 0, 5},
		},
		{
			name:  "up by two octaves",
			row:   pattern.Row{4, 15, 0, 0, 0, 2},
			delta: 24,
			want:  pattern.Row{4, 15, 0, 0, 0, 6},
		},
		{
			name:        "up with octave clamp",
			row:         pattern.Row{15, 15, 0, 0, 0, 13},
			delta:       1,
			want:        pattern.Row{4, 15, 0, 0, 0, 13},
			wantClamped: true,
		},
		{
			name:  "down within octave",
			row:   pattern.Row{10, 15, 0, 0, 0, 5},
			delta: -3,
			want:  pattern.Row{7, 15, 0, 0, 0, 5},
		},
		{
			name:  "down with octave borrow",
			row:   pattern.Row{5, 15, 0, 0, 0, 5},
			delta: -3,
			want:  pattern.Row{14, 15, 0, 0, 0, 4},
		},
		{
			name:        "down with octave clamp",
			row:         pattern.Row{4, 15, 0, 0, 0, 1},
			delta:       -1,
			want:        pattern.Row{15, 15, 0, 0, 0, 2},
			wantClamped: true,
		},
		{
			name:        "largest delta",
			row:         pattern.Row{4, 15, 0, 0, 0, 3},
			delta:       math.MaxInt,
			want:        pattern.Row{11, 15, 0, 0, 0, 13},
			wantClamped: true,
		},
		{
			name:        "smallest delta",
			row:         pattern.Row{4, 15, 0, 0, 0, 3},
			delta:       math.MinInt,
			want:        pattern.Row{8, 15, 0, 0, 0, 2},
			wantClamped: true,
		},
		{
			name:        "huge downward delta",
			row:         pattern.Row{7, 15, 0, 0, 0, 3},
			delta:       -12 * 1_000_000_001,
			want:        pattern.Row{7, 15, 0, 0, 0, 2},
			wantClamped: true,
		},
		{
			name:  "zero delta",
			row:   pattern.Row{9, 8, 7, 6, 5, 4},
			delta: 0,
			want:  pattern.Row{9, 8, 7, 6, 5, 4},
		},
	}

	engine := New(log.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := tt.row
			clamped := engine.Row(&row, tt.delta)
			assert.Equal(t, tt.want, row)
			assert.Equal(t, tt.wantClamped, clamped)
		})
	}
}

func TestRowKeepsPitchClass(t *testing.T) {
	engine := New(log.NewTestLogger(t))

	for note := pattern.NoteC; note <= 15; note++ {
		for _, delta := range []int{1, 5, 11, 12, 13, 30, 12_000_000_007, math.MaxInt} {
			row := pattern.Row{uint8(note), 15, 0, 0, 0, 1}
			engine.Row(&row, delta)

			transposed := int(row[pattern.Note])
			assert.True(t, transposed >= pattern.NoteC && transposed <= 15)
			assert.Equal(t, (note-pattern.NoteC+delta%12)%12, (transposed-pattern.NoteC)%12)
		}
	}
}

func TestPattern(t *testing.T) {
	engine := New(log.NewTestLogger(t))

	p := &pattern.Pattern{}
	p[0] = pattern.Row{15, 15, 0, 0, 0, 13}
	p[1] = pattern.Row{1, 0, 0, 0, 0, 0}

	result := engine.Pattern(p, 1)
	assert.True(t, result.Changed)
	assert.Equal(t, 1, result.Clamped)
	assert.Equal(t, pattern.Row{1, 0, 0, 0, 0, 0}, p[1])

	empty := &pattern.Pattern{}
	result = engine.Pattern(empty, 7)
	assert.False(t, result.Changed)
}

func testCart() string {
	return "-- <TILES>\n" +
		"-- 000:00\n" +
		"-- </TILES>\n" +
		"-- <PATTERNS>\n" +
		"-- 000:" + "4f0001" + strings.Repeat("000000", 63) + "\n" +
		"-- 001:" + "E0F1A3" + strings.Repeat("000000", 63) + "\n" +
		"-- 002:" + strings.Repeat("100000", 64) + "\n" +
		"-- </PATTERNS>\n"
}

func TestApply(t *testing.T) {
	doc := section.Parse([]byte(testCart()))
	engine := New(log.NewTestLogger(t))

	report, err := engine.Apply(doc, 1, 3, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, report.Patterns)
	assert.Equal(t, 0, report.Clamped)

	lines := doc.Lines()
	assert.Equal(t, "-- 000:"+"7f0001"+strings.Repeat("000000", 63), lines[4])
	assert.Equal(t, "-- 001:"+"50f1a5"+strings.Repeat("000000", 63), lines[5])
	assert.Equal(t, "-- 002:"+strings.Repeat("100000", 64), lines[6])
	assert.Equal(t, "-- 000:00", lines[1])
}

func TestApplyZeroDeltaIsIdentity(t *testing.T) {
	cart := testCart()
	doc := section.Parse([]byte(cart))
	engine := New(log.NewTestLogger(t))

	report, err := engine.Apply(doc, 1, 60, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(report.Patterns))
	assert.Equal(t, cart, string(doc.Bytes()))
}

func TestApplyRangeErrorLeavesDocument(t *testing.T) {
	cart := testCart()
	doc := section.Parse([]byte(cart))
	engine := New(log.NewTestLogger(t))

	_, err := engine.Apply(doc, 0, 2, 5)
	assert.Error(t, err)
	assert.Equal(t, cart, string(doc.Bytes()))
}

func TestApplyMixedLineEndings(t *testing.T) {
	cart := "-- title: song\n" +
		"-- <PATTERNS>\r\n" +
		"-- 000:" + strings.Repeat("4f0001", 64) + "\r\n" +
		"-- 001:" + strings.Repeat("6f0003", 64) + "\n" +
		"-- </PATTERNS>\r\n"
	engine := New(log.NewTestLogger(t))

	doc := section.Parse([]byte(cart))
	report, err := engine.Apply(doc, 1, 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(report.Patterns))
	assert.Equal(t, cart, string(doc.Bytes()))

	report, err = engine.Apply(doc, 1, 2, 1)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, report.Patterns)
	want := "-- title: song\n" +
		"-- <PATTERNS>\r\n" +
		"-- 000:" + strings.Repeat("5f0001", 64) + "\r\n" +
		"-- 001:" + strings.Repeat("7f0003", 64) + "\n" +
		"-- </PATTERNS>\r\n"
	assert.Equal(t, want, string(doc.Bytes()))
}
