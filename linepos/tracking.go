package linepos

// LineCursor wraps a cursor and counts the line breaks it moves over.
//
// It stores only the line number and the unit it last left behind, never a
// column and never an end cursor. Dereferencing and comparison behave
// exactly like the wrapped cursor; two LineCursors are equal when their
// bases are, however they got there.
//
// A break is LF, CR, CRLF or LF followed by CR. LF LF and CR CR are two
// breaks each.
//
// The zero value reports line 1 and wraps the zero value of C.
// A LineCursor is not safe for concurrent use.
type LineCursor[C Cursor[C]] struct {
	base C
	// breaks crossed so far; the line is breaks+1
	breaks uint
	// last unit read by Advance, zero before the first
	prev rune
}

// Track returns a LineCursor at base, reporting line 1.
func Track[C Cursor[C]](base C) LineCursor[C] {
	return LineCursor[C]{base: base}
}

// Position returns the current 1-based line number.
func (c LineCursor[C]) Position() uint {
	return c.breaks + 1
}

// Base returns the wrapped cursor.
func (c LineCursor[C]) Base() C {
	return c.base
}

// Unit returns the unit at the current position.
func (c LineCursor[C]) Unit() rune {
	return c.base.Unit()
}

// Advance moves c forward by one unit, counting a line break if the unit
// it leaves behind starts one. It performs no bounds checking of its own.
func (c *LineCursor[C]) Advance() {
	ref := c.base.Unit()
	if (c.prev != '\n' && ref == '\r') || (c.prev != '\r' && ref == '\n') {
		c.breaks++
	}
	c.prev = ref
	c.base = c.base.Next()
}

// Next returns a copy of c advanced by one unit.
func (c LineCursor[C]) Next() LineCursor[C] {
	c.Advance()
	return c
}

// Equal reports whether the wrapped cursors are at the same position.
func (c LineCursor[C]) Equal(other LineCursor[C]) bool {
	return c.base.Equal(other.base)
}
