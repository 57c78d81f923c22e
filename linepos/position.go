package linepos

// UnknownLine is returned by Line for cursors that do not track lines.
// It is the largest uint and never a valid line number.
const UnknownLine = ^uint(0)

// DefaultTabWidth is the tab stop distance Column uses when given a
// width below 1.
const DefaultTabWidth = 4

// Positioner is implemented by cursors that know their line number.
type Positioner interface {
	Position() uint
}

// Line returns the line number of c if c is a Positioner, such as a
// LineCursor, and UnknownLine otherwise.
func Line(c any) uint {
	if p, ok := c.(Positioner); ok {
		return p.Position()
	}
	return UnknownLine
}

// LineOf is Line with the unknown case reported separately.
func LineOf(c any) (uint, bool) {
	if p, ok := c.(Positioner); ok {
		return p.Position(), true
	}
	return 0, false
}

func isNewline(u rune) bool {
	return u == '\r' || u == '\n'
}

// LineStart returns the start of the line containing current, scanning
// forward from lower. Every CR and every LF ends a line here; CRLF is not
// folded into one break the way LineCursor folds it.
//
// If no line ends between lower and current, lower is returned. The
// result is unreliable when current itself is on a CR or LF.
func LineStart[C Cursor[C]](lower, current C) C {
	latest := lower
	prevNewline := false
	for i := lower; !i.Equal(current); i = i.Next() {
		if prevNewline {
			latest = i
		}
		prevNewline = isNewline(i.Unit())
	}
	if prevNewline {
		latest = current
	}
	return latest
}

// LineEnd returns the first CR or LF at or after current, or upper if
// there is none before it.
func LineEnd[C Cursor[C]](current, upper C) C {
	for i := current; !i.Equal(upper); i = i.Next() {
		if isNewline(i.Unit()) {
			return i
		}
	}
	return upper
}

// Range is the half-open span [First, Last).
type Range[C Cursor[C]] struct {
	First, Last C
}

// Len returns the number of units in r.
func (r Range[C]) Len() int {
	return Distance(r.First, r.Last)
}

// Empty reports whether r holds no units.
func (r Range[C]) Empty() bool {
	return r.First.Equal(r.Last)
}

// Units copies the units of r.
func (r Range[C]) Units() []rune {
	var out []rune
	for i := r.First; !i.Equal(r.Last); i = i.Next() {
		out = append(out, i.Unit())
	}
	return out
}

// CurrentLine returns the line containing current, without its line
// ending. Like LineStart, the result is unreliable when current is on a
// CR or LF.
func CurrentLine[C Cursor[C]](lower, current, upper C) Range[C] {
	return Range[C]{
		First: LineStart(lower, current),
		Last:  LineEnd(current, upper),
	}
}

// Column returns the 1-based column of current, counting one column per
// unit from the start of its line and advancing tabs to the next stop of
// tabWidth. A tabWidth below 1 means DefaultTabWidth.
func Column[C Cursor[C]](lower, current C, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	column := 1
	for i := LineStart(lower, current); !i.Equal(current); i = i.Next() {
		if i.Unit() == '\t' {
			column += tabWidth - (column-1)%tabWidth
		} else {
			column++
		}
	}
	return column
}

// Distance returns the number of steps from from to to. to must be
// reachable from from.
func Distance[C Cursor[C]](from, to C) int {
	n := 0
	for i := from; !i.Equal(to); i = i.Next() {
		n++
	}
	return n
}
