// Package diag formats source locations for people and for tools.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/rivo/uniseg"
	"github.com/tidwall/sjson"
)

// Location is a point in a named input.
type Location struct {
	Name   string
	Offset int // byte offset
	Line   int // 1-based
	Column int // 1-based, tabs expanded
}

// String returns "name:line:col", or "line:col" when the name is empty.
func (l Location) String() string {
	if l.Name == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.Name, l.Line, l.Column)
}

// Snippet is a location together with the text of its line.
type Snippet struct {
	Location
	// Text is the line without its line ending.
	Text string
	// Index is the byte index of the location within Text.
	Index int
	// Message is printed after the location when set.
	Message string
}

// Options control Render.
type Options struct {
	TabWidth int
	Color    bool
}

const caretStyle = "red+b"

// Render writes the location header, the source line and a caret under
// the located character.
func Render(w io.Writer, s Snippet, opts Options) error {
	header := s.Location.String()
	if s.Message != "" {
		header += ": " + s.Message
	}

	index := min(max(s.Index, 0), len(s.Text))
	pad := uniseg.StringWidth(ExpandTabs(s.Text[:index], opts.TabWidth))
	caret := "^"
	if opts.Color {
		caret = ansi.Color(caret, caretStyle)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n%s%s\n",
		header,
		ExpandTabs(s.Text, opts.TabWidth),
		strings.Repeat(" ", pad),
		caret,
	)
	return err
}

// ExpandTabs replaces tabs with spaces up to the next multiple of tabWidth
// terminal cells. Wide characters count as their display width.
func ExpandTabs(text string, tabWidth int) string {
	if !strings.Contains(text, "\t") {
		return text
	}
	if tabWidth < 1 {
		tabWidth = 4
	}

	var b strings.Builder
	cells := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			n := tabWidth - cells%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			cells += n
			continue
		}
		b.WriteString(cluster)
		cells += uniseg.StringWidth(cluster)
	}
	return b.String()
}

type jsonField struct {
	path  string
	value any
}

// JSON returns s as a single-line JSON object.
func JSON(s Snippet) (string, error) {
	fields := []jsonField{
		{"file", s.Name},
		{"offset", s.Offset},
		{"line", s.Line},
		{"column", s.Column},
		{"text", s.Text},
	}
	if s.Message != "" {
		fields = append(fields, jsonField{"message", s.Message})
	}

	out := ""
	for _, f := range fields {
		var err error
		out, err = sjson.Set(out, f.path, f.value)
		if err != nil {
			return "", fmt.Errorf("encoding %s: %w", f.path, err)
		}
	}
	return out, nil
}
