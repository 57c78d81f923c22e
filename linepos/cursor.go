package linepos

import "unicode/utf8"

// Unit is the set of element types a SliceCursor can range over.
type Unit interface {
	~byte | ~uint16 | ~rune
}

// Cursor is a forward-only position in a sequence of units.
//
// Cursors are values: Next returns an advanced copy and leaves the receiver
// where it was. Units narrower than rune are widened by Unit.
//
// Equal compares positions only. Comparing cursors drawn from different
// sequences is meaningless.
type Cursor[C any] interface {
	// Unit returns the unit at the current position.
	Unit() rune
	// Next returns a cursor one unit further along.
	Next() C
	// Equal reports whether both cursors denote the same position.
	Equal(C) bool
}

// SliceCursor is a Cursor over a slice of units.
type SliceCursor[T Unit] struct {
	units []T
	pos   int
}

// Slice returns a cursor at the first element of units.
func Slice[T Unit](units []T) SliceCursor[T] {
	return SliceCursor[T]{units: units}
}

// Bytes returns a cursor at the first byte of b.
func Bytes(b []byte) SliceCursor[byte] {
	return Slice(b)
}

// UTF16 returns a cursor at the first code unit of u.
func UTF16(u []uint16) SliceCursor[uint16] {
	return Slice(u)
}

// Value returns the element at the current position.
func (c SliceCursor[T]) Value() T {
	return c.units[c.pos]
}

// Unit returns the element at the current position widened to a rune.
func (c SliceCursor[T]) Unit() rune {
	return rune(c.units[c.pos])
}

// Next returns a cursor at the following element.
func (c SliceCursor[T]) Next() SliceCursor[T] {
	c.pos++
	return c
}

// Equal reports whether c and other share an index.
func (c SliceCursor[T]) Equal(other SliceCursor[T]) bool {
	return c.pos == other.pos
}

// Offset returns the element index of c.
func (c SliceCursor[T]) Offset() int {
	return c.pos
}

// At returns a cursor into the same slice at index i.
func (c SliceCursor[T]) At(i int) SliceCursor[T] {
	c.pos = i
	return c
}

// End returns the cursor one past the last element.
func (c SliceCursor[T]) End() SliceCursor[T] {
	c.pos = len(c.units)
	return c
}

// StringCursor is a Cursor over the bytes of a string.
type StringCursor struct {
	s   string
	pos int
}

// String returns a byte cursor at the start of s.
func String(s string) StringCursor {
	return StringCursor{s: s}
}

// Unit returns the byte at the current position.
func (c StringCursor) Unit() rune {
	return rune(c.s[c.pos])
}

// Next returns a cursor at the following byte.
func (c StringCursor) Next() StringCursor {
	c.pos++
	return c
}

// Equal reports whether c and other share a byte offset.
func (c StringCursor) Equal(other StringCursor) bool {
	return c.pos == other.pos
}

// Offset returns the byte offset of c.
func (c StringCursor) Offset() int {
	return c.pos
}

// At returns a cursor into the same string at byte offset i.
func (c StringCursor) At(i int) StringCursor {
	c.pos = i
	return c
}

// End returns the cursor one past the last byte.
func (c StringCursor) End() StringCursor {
	c.pos = len(c.s)
	return c
}

// RuneCursor is a Cursor over the UTF-8 encoded runes of a string.
// Each step moves over one encoded rune; invalid bytes decode to
// utf8.RuneError and are stepped over one at a time.
type RuneCursor struct {
	s   string
	pos int
}

// Runes returns a rune cursor at the start of s.
func Runes(s string) RuneCursor {
	return RuneCursor{s: s}
}

// Unit returns the rune starting at the current position.
func (c RuneCursor) Unit() rune {
	r, _ := utf8.DecodeRuneInString(c.s[c.pos:])
	return r
}

// Next returns a cursor at the following rune. At the end of the string
// it returns c unchanged.
func (c RuneCursor) Next() RuneCursor {
	_, n := utf8.DecodeRuneInString(c.s[c.pos:])
	c.pos += n
	return c
}

// Equal reports whether c and other share a byte offset.
func (c RuneCursor) Equal(other RuneCursor) bool {
	return c.pos == other.pos
}

// Offset returns the byte offset of c.
func (c RuneCursor) Offset() int {
	return c.pos
}

// At returns a cursor into the same string at byte offset i, which must
// fall on a rune boundary.
func (c RuneCursor) At(i int) RuneCursor {
	c.pos = i
	return c
}

// End returns the cursor one past the last rune.
func (c RuneCursor) End() RuneCursor {
	c.pos = len(c.s)
	return c
}
