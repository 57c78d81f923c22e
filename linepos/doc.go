// Package linepos tracks line numbers over forward cursors and recovers
// line and column information on demand.
//
// There are two halves, usable together or apart.
//
// LineCursor wraps any Cursor and counts line breaks as it advances, so the
// current line is always available in O(1). It keeps no column and needs no
// end cursor:
//
//	c := linepos.Track(linepos.String(src))
//	for c.Unit() != '=' {
//	    c.Advance()
//	}
//	line := c.Position()
//
// The free functions rescan from a caller supplied lower bound and work on
// any Cursor, tracked or not:
//
//	start := linepos.String(src)
//	col := linepos.Column(start, c.Base(), linepos.DefaultTabWidth)
//	text := linepos.CurrentLine(start, c.Base(), start.End())
//
// # Line Breaks
//
// LineCursor counts LF, CR, CRLF and LF CR as one break each. LineStart,
// LineEnd, CurrentLine and Column instead treat every CR and every LF as a
// line end. The two agree for any position that is not inside a CRLF or
// LF CR pair; callers mixing them on such input should expect the
// rescanning functions to see an extra empty line.
//
// # Cursors
//
// Cursors are small values. SliceCursor covers []byte, []uint16 and []rune;
// StringCursor walks the bytes of a string and RuneCursor its UTF-8 runes.
// Any type with Unit, Next and Equal methods can be tracked.
//
// # Preconditions
//
// Bounds must come from the same sequence and satisfy
// lower <= current <= upper. None of this is checked; a violated bound
// scans past the end of the sequence and fails however the cursor fails.
package linepos
