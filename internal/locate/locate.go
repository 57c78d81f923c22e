// Package locate turns byte offsets and pattern matches into line/column
// snippets in a single forward pass over the input.
package locate

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/dshills/linepos/internal/diag"
	"github.com/dshills/linepos/linepos"
)

// ErrOffsetOutOfRange indicates an offset outside the input.
var ErrOffsetOutOfRange = errors.New("offset out of range")

// Offsets locates each offset in content. The result is ordered by offset;
// duplicates are kept.
//
// The line number comes from a LineCursor carried across the whole input,
// and columns are rescanned only from the start of the current line.
func Offsets(name string, content []byte, offsets []int, tabWidth int) ([]diag.Snippet, error) {
	sorted := slices.Clone(offsets)
	slices.Sort(sorted)
	for _, off := range sorted {
		if off < 0 || off > len(content) {
			return nil, fmt.Errorf("%w: %d (size %d)", ErrOffsetOutOfRange, off, len(content))
		}
	}

	start := linepos.Bytes(content)
	end := start.End()
	tracker := linepos.Track(start)
	// lower trails the tracker at the most recent line start so that
	// column scans never reach back past the current line.
	lower := start

	snippets := make([]diag.Snippet, 0, len(sorted))
	for _, off := range sorted {
		for tracker.Base().Offset() < off {
			u := tracker.Unit()
			tracker.Advance()
			if u == '\r' || u == '\n' {
				lower = tracker.Base()
			}
		}

		current := tracker.Base()
		line := linepos.CurrentLine(lower, current, end)
		first, last := line.First.Offset(), line.Last.Offset()

		snippets = append(snippets, diag.Snippet{
			Location: diag.Location{
				Name:   name,
				Offset: off,
				Line:   int(tracker.Position()),
				Column: linepos.Column(lower, current, tabWidth),
			},
			Text:  string(content[first:last]),
			Index: off - first,
		})
	}
	return snippets, nil
}

// Matches locates the start of every match of re in content. Each
// snippet's message quotes the matched text.
func Matches(name string, content []byte, re *regexp.Regexp, tabWidth int) ([]diag.Snippet, error) {
	found := re.FindAllIndex(content, -1)
	offsets := make([]int, len(found))
	for i, m := range found {
		offsets[i] = m[0]
	}

	snippets, err := Offsets(name, content, offsets, tabWidth)
	if err != nil {
		return nil, err
	}
	// FindAllIndex reports matches in order, so snippets line up with found.
	for i, m := range found {
		snippets[i].Message = fmt.Sprintf("match %q", content[m[0]:m[1]])
	}
	return snippets, nil
}
