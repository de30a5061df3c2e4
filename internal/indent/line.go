package indent

import "fmt"

// Line is a borrowed view of one document line.
// Text excludes the line terminator.
type Line struct {
	Start int64  // Byte offset of the first character in the document
	Text  string // Line content without newline
}

// Len returns the length of the line in bytes.
func (l Line) Len() int {
	return len(l.Text)
}

// End returns the byte offset just past the last character.
func (l Line) End() int64 {
	return l.Start + int64(l.Len())
}

// Replacement overwrites the leading whitespace of one line.
type Replacement struct {
	Start  int64  // Line start offset
	Length int    // Number of bytes to replace
	Text   string // New leading whitespace
}

// End returns the exclusive end offset of the replaced span.
func (r Replacement) End() int64 {
	return r.Start + int64(r.Length)
}

// String returns a human-readable representation of the replacement.
func (r Replacement) String() string {
	return fmt.Sprintf("Replace[%d:%d) with %q", r.Start, r.End(), r.Text)
}

// SplitLines splits text into lines, recognizing \n, \r\n and \r.
// The result always has at least one line.
func SplitLines(text string) []Line {
	lines := make([]Line, 0, 16)
	start := 0
	i := 0
	for i < len(text) {
		switch text[i] {
		case '\n':
			lines = append(lines, Line{Start: int64(start), Text: text[start:i]})
			i++
			start = i
		case '\r':
			lines = append(lines, Line{Start: int64(start), Text: text[start:i]})
			i++
			if i < len(text) && text[i] == '\n' {
				i++
			}
			start = i
		default:
			i++
		}
	}
	return append(lines, Line{Start: int64(start), Text: text[start:]})
}
