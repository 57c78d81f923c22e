package linepos

import (
	"regexp"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
)

func TestLineUnknownForPlainCursors(t *testing.T) {
	plain := []any{
		String("a\nb").At(2),
		Bytes([]byte("x")),
		Runes(""),
		UTF16(nil),
		nil,
		42,
	}
	for _, c := range plain {
		if got := Line(c); got != UnknownLine {
			t.Errorf("Line(%T): expected UnknownLine, got %d", c, got)
		}
		if _, ok := LineOf(c); ok {
			t.Errorf("LineOf(%T): expected ok false", c)
		}
	}
}

func TestLineTrackedCursor(t *testing.T) {
	c := Track(String("a\nb"))
	c.Advance()
	c.Advance()

	if got := Line(c); got != 2 {
		t.Errorf("value: expected 2, got %d", got)
	}
	if got := Line(&c); got != 2 {
		t.Errorf("pointer: expected 2, got %d", got)
	}
	if got, ok := LineOf(c); !ok || got != 2 {
		t.Errorf("LineOf: expected (2, true), got (%d, %v)", got, ok)
	}
}

func TestUnknownLineIsMaxUint(t *testing.T) {
	var zero uint
	if UnknownLine != zero-1 {
		t.Errorf("expected max uint, got %d", UnknownLine)
	}
}

func TestLineStart(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current int
		want    int
	}{
		{"no newline", "abcdef", 4, 0},
		{"at lower", "abc", 0, 0},
		{"mid line", "abc\ndef", 5, 4},
		{"first of line", "abc\ndef", 4, 4},
		{"CR only", "ab\rcd", 4, 3},
		{"CRLF", "a\r\nb", 3, 3},
		{"LFCR", "a\n\rb", 3, 3},
		{"blank lines", "a\n\n\nb", 4, 4},
		{"third line", "one\ntwo\nthree", 10, 8},
		{"at end", "ab\ncd", 5, 3},
	}

	for _, tt := range tests {
		s := String(tt.input)
		got := LineStart(s, s.At(tt.current))
		if got.Offset() != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got.Offset())
		}
	}
}

func TestLineStartRespectsLowerBound(t *testing.T) {
	s := String("abc\ndef")
	got := LineStart(s.At(5), s.At(6))
	if got.Offset() != 5 {
		t.Errorf("expected lower bound 5, got %d", got.Offset())
	}
}

func TestLineEnd(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current int
		want    int
	}{
		{"to newline", "abc\ndef", 1, 3},
		{"to upper", "abc\ndef", 4, 7},
		{"CR", "ab\rcd", 0, 2},
		{"CRLF stops at CR", "ab\r\ncd", 1, 2},
		{"empty input", "", 0, 0},
	}

	for _, tt := range tests {
		s := String(tt.input)
		got := LineEnd(s.At(tt.current), s.End())
		if got.Offset() != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got.Offset())
		}
	}
}

func TestLineEndStopsAtUpperBound(t *testing.T) {
	s := String("abcdef\n")
	got := LineEnd(s.At(1), s.At(4))
	if got.Offset() != 4 {
		t.Errorf("expected 4, got %d", got.Offset())
	}
}

func TestCurrentLine(t *testing.T) {
	const input = "abc\ndef\nghi"
	s := String(input)
	r := CurrentLine(s, s.At(5), s.End())

	if r.First.Offset() != 4 || r.Last.Offset() != 7 {
		t.Errorf("expected [4, 7), got [%d, %d)", r.First.Offset(), r.Last.Offset())
	}
	if diff := cmp.Diff("def", string(r.Units())); diff != "" {
		t.Errorf("line mismatch (-want +got):\n%s", diff)
	}
	if r.Len() != 3 {
		t.Errorf("expected length 3, got %d", r.Len())
	}
}

func TestCurrentLineEdges(t *testing.T) {
	tests := []struct {
		input   string
		current int
		want    string
	}{
		{"abc\ndef\nghi", 0, "abc"},
		{"abc\ndef\nghi", 10, "ghi"},
		{"abc\ndef\nghi", 11, "ghi"},
		{"abc\n\nghi", 5, "ghi"},
		{"solo", 2, "solo"},
		{"a\r\nbc\r\n", 4, "bc"},
	}

	for _, tt := range tests {
		s := String(tt.input)
		r := CurrentLine(s, s.At(tt.current), s.End())
		if got := string(r.Units()); got != tt.want {
			t.Errorf("%q at %d: expected %q, got %q", tt.input, tt.current, tt.want, got)
		}
	}
}

func TestRangeEmpty(t *testing.T) {
	s := String("ab\n\ncd")
	r := CurrentLine(s, s.At(3), s.End())
	if !r.Empty() {
		t.Errorf("expected empty range, got %q", string(r.Units()))
	}
	if r.Units() != nil {
		t.Errorf("expected nil units, got %v", r.Units())
	}
}

func TestColumn(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		current  int
		tabWidth int
		want     int
	}{
		{"start", "abc", 0, 4, 1},
		{"plain", "abc", 2, 4, 3},
		{"tab stop", "ab\tc", 3, 4, 5},
		{"leading tab", "\tx", 1, 4, 5},
		{"tab after stop", "abcde\tx", 6, 4, 9},
		{"tab on stop", "abcd\tx", 5, 4, 9},
		{"two tabs width 8", "\t\tx", 2, 8, 17},
		{"width one", "a\t\tb", 3, 1, 4},
		{"default width", "\tx", 1, 0, 5},
		{"negative width", "\tx", 1, -3, 5},
		{"second line", "ab\n\tc", 4, 4, 5},
		{"after CR", "abc\rde", 6, 4, 3},
	}

	for _, tt := range tests {
		s := String(tt.input)
		got := Column(s, s.At(tt.current), tt.tabWidth)
		if got != tt.want {
			t.Errorf("%s: expected column %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestColumnWidthOneCountsUnits(t *testing.T) {
	const input = "\ta\t\tb c\t"
	s := String(input)
	for i := 0; i <= len(input); i++ {
		if got := Column(s, s.At(i), 1); got != i+1 {
			t.Errorf("offset %d: expected %d, got %d", i, i+1, got)
		}
	}
}

func TestColumnUnitKinds(t *testing.T) {
	const input = "héllo\nwörld"
	// 'r' sits after "héllo\n" (7 bytes) and "wö" (3 bytes).
	const offset = 10

	runes := Runes(input)
	if got := Column(runes, runes.At(offset), 4); got != 3 {
		t.Errorf("runes: expected column 3, got %d", got)
	}

	bytes := String(input)
	if got := Column(bytes, bytes.At(offset), 4); got != 4 {
		t.Errorf("bytes: expected column 4, got %d", got)
	}

	units := UTF16(utf16.Encode([]rune("a\nb\tc")))
	if got := Column(units, units.At(4), 4); got != 5 {
		t.Errorf("utf16: expected column 5, got %d", got)
	}
}

func TestUtilitiesAcceptLineCursors(t *testing.T) {
	const input = "abc\ndef"
	start := Track(String(input))
	current := start
	for current.Unit() != 'e' {
		current.Advance()
	}

	ls := LineStart(start, current)
	if ls.Base().Offset() != 4 {
		t.Errorf("expected line start at 4, got %d", ls.Base().Offset())
	}
	if ls.Position() != 2 {
		t.Errorf("line start cursor should report line 2, got %d", ls.Position())
	}
	if got := Column(start, current, 4); got != 2 {
		t.Errorf("expected column 2, got %d", got)
	}
	if got := Distance(start, current); got != 5 {
		t.Errorf("expected distance 5, got %d", got)
	}
}

func TestUtilitiesDoNotMoveArguments(t *testing.T) {
	lower := Track(String("a\nbc"))
	current := lower.Next().Next().Next()

	_ = CurrentLine(lower, current, Track(lower.Base().End()))
	_ = Column(lower, current, 4)

	if lower.Base().Offset() != 0 || lower.Position() != 1 {
		t.Error("lower bound moved")
	}
	if current.Base().Offset() != 3 || current.Position() != 2 {
		t.Error("current moved")
	}
}

func TestDistance(t *testing.T) {
	s := String("hello")
	if got := Distance(s, s.End()); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := Distance(s.At(2), s.At(2)); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	r := Runes("日本")
	if got := Distance(r, r.End()); got != 2 {
		t.Errorf("expected 2 runes, got %d", got)
	}
}

// The tracker folds CRLF while the rescanning functions see CR and LF as
// separate line ends. For positions on line content both agree with a
// plain split of the input.
func TestTrackerAgreesWithRescan(t *testing.T) {
	split := regexp.MustCompile(`\r\n|\r|\n`)
	inputs := []string{
		"one\ntwo\n\nthree\nfour",
		"a\r\nbb\r\nccc",
		"x\ry\rz",
		"\nlead\n",
	}

	for _, input := range inputs {
		lines := split.Split(input, -1)
		start := String(input)
		c := Track(start)

		for {
			at := c.Base()
			if at.Offset() == len(input) {
				break
			}
			if !isNewline(at.Unit()) {
				r := CurrentLine(start, at, start.End())
				want := lines[c.Position()-1]
				if got := string(r.Units()); got != want {
					t.Errorf("%q offset %d line %d: expected %q, got %q",
						input, at.Offset(), c.Position(), want, got)
				}
			}
			c.Advance()
		}
	}
}

func TestTrackerAndRescanDisagreeInsideCRLF(t *testing.T) {
	s := String("a\r\nb")
	c := Track(s)
	c.Advance()
	c.Advance()

	// Between CR and LF the tracker has counted one break.
	if c.Position() != 2 {
		t.Errorf("expected tracker line 2, got %d", c.Position())
	}
	// LineStart treats the CR alone as a line end.
	if got := LineStart(s, c.Base()); got.Offset() != 2 {
		t.Errorf("expected line start 2, got %d", got.Offset())
	}
}
