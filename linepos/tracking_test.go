package linepos

import (
	"strings"
	"testing"
)

func advanceAll(s string) LineCursor[StringCursor] {
	c := Track(String(s))
	for i := 0; i < len(s); i++ {
		c.Advance()
	}
	return c
}

func TestLineCursorZeroValue(t *testing.T) {
	var c LineCursor[StringCursor]
	if c.Position() != 1 {
		t.Errorf("expected line 1, got %d", c.Position())
	}
	if !c.Equal(LineCursor[StringCursor]{}) {
		t.Error("zero cursors should be equal")
	}
}

func TestTrackStartsAtLineOne(t *testing.T) {
	c := Track(String("\n\n"))
	if c.Position() != 1 {
		t.Errorf("expected line 1, got %d", c.Position())
	}
	if c.prev != 0 {
		t.Errorf("expected zero sentinel, got %q", c.prev)
	}
}

func TestLineCursorRepeatedBreaks(t *testing.T) {
	for _, nl := range []string{"\n", "\r"} {
		for k := 0; k <= 6; k++ {
			c := advanceAll(strings.Repeat(nl, k))
			if c.Position() != uint(k+1) {
				t.Errorf("%q x %d: expected line %d, got %d", nl, k, k+1, c.Position())
			}
		}
	}
}

func TestLineCursorBreakKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint
	}{
		{"empty", "", 1},
		{"no breaks", "abc", 1},
		{"LF", "a\nb", 2},
		{"CR", "a\rb", 2},
		{"CRLF", "\r\n", 2},
		{"LFCR", "\n\r", 2},
		{"LFLF", "\n\n", 3},
		{"CRCR", "\r\r", 3},
		{"CRLF then LF", "\r\n\n", 3},
		{"mixed", "a\nb\r\nc\rd", 4},
		{"trailing text", "one\r\ntwo\r\nthree", 3},
		// LF followed by CR is a pair, so back to back CRLFs share a break.
		{"CRLF CRLF", "a\r\n\r\nb", 2},
	}

	for _, tt := range tests {
		c := advanceAll(tt.input)
		if c.Position() != tt.want {
			t.Errorf("%s: expected line %d, got %d", tt.name, tt.want, c.Position())
		}
	}
}

func TestLineCursorStepByStep(t *testing.T) {
	c := Track(String("ab\ncd\r\ne"))
	want := []uint{1, 1, 1, 2, 2, 2, 3, 3, 3}

	for i, w := range want {
		if c.Position() != w {
			t.Fatalf("offset %d: expected line %d, got %d", i, w, c.Position())
		}
		if c.Base().Offset() != i {
			t.Fatalf("expected base offset %d, got %d", i, c.Base().Offset())
		}
		if i < len(want)-1 {
			c.Advance()
		}
	}
}

func TestLineCursorDelegatesUnit(t *testing.T) {
	c := Track(String("xy"))
	if c.Unit() != 'x' {
		t.Errorf("expected 'x', got %q", c.Unit())
	}
	c.Advance()
	if c.Unit() != 'y' {
		t.Errorf("expected 'y', got %q", c.Unit())
	}
	if c.Position() != 1 {
		t.Errorf("dereference should not change line, got %d", c.Position())
	}
}

func TestLineCursorNextLeavesReceiver(t *testing.T) {
	c := Track(String("\nx"))
	n := c.Next()

	if c.Base().Offset() != 0 || c.Position() != 1 {
		t.Errorf("receiver moved: offset %d line %d", c.Base().Offset(), c.Position())
	}
	if n.Base().Offset() != 1 || n.Position() != 2 {
		t.Errorf("expected offset 1 line 2, got offset %d line %d", n.Base().Offset(), n.Position())
	}
}

func TestLineCursorEqualityIgnoresLine(t *testing.T) {
	s := String("\nab")
	walked := Track(s)
	walked.Advance()
	walked.Advance()

	placed := Track(s.At(2))

	if !walked.Equal(placed) {
		t.Error("cursors at the same base position should be equal")
	}
	if walked.Position() == placed.Position() {
		t.Errorf("expected different lines, both are %d", walked.Position())
	}
}

func TestLineCursorOverOtherCursors(t *testing.T) {
	bytes := Track(Bytes([]byte("a\r\nb")))
	for i := 0; i < 3; i++ {
		bytes.Advance()
	}
	if bytes.Position() != 2 || bytes.Unit() != 'b' {
		t.Errorf("bytes: expected line 2 at 'b', got line %d at %q", bytes.Position(), bytes.Unit())
	}

	runes := Track(Runes("é\nü\nx"))
	for runes.Unit() != 'x' {
		runes.Advance()
	}
	if runes.Position() != 3 {
		t.Errorf("runes: expected line 3, got %d", runes.Position())
	}
	if runes.Base().Offset() != 6 {
		t.Errorf("runes: expected byte offset 6, got %d", runes.Base().Offset())
	}

	units := Track(UTF16([]uint16{'a', '\n', 'b'}))
	units.Advance()
	units.Advance()
	if units.Position() != 2 || units.Base().Value() != 'b' {
		t.Errorf("utf16: expected line 2 at 'b', got line %d at %q", units.Position(), units.Unit())
	}
}
