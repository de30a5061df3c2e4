package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/dshills/mixedtabs/internal/indent"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
	ErrInvalidTabWidth  = indent.ErrInvalidTabWidth
)

// LineEnding names the dominant line terminator of a text. It describes the
// content and is never used to rewrite it.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the conventional name of the line ending: lf, crlf or cr.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "crlf"
	case LineEndingCR:
		return "cr"
	default:
		return "lf"
	}
}

// Buffer holds document text with a line index.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	lines      []indent.Line
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// DefaultTabWidth is the tab width of a new buffer.
const DefaultTabWidth = 4

// NewBufferFromString creates a buffer with initial content.
// The content is kept byte for byte; line terminators are never rewritten.
func NewBufferFromString(s string) *Buffer {
	b := &Buffer{tabWidth: DefaultTabWidth}
	b.setText(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data)), nil
}

// setText replaces the content and rebuilds the line index.
// Caller must hold the write lock.
func (b *Buffer) setText(s string) {
	b.text = s
	b.lines = indent.SplitLines(s)
	b.lineEnding = DetectLineEnding(s)
	b.revisionID = NewRevisionID()
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// Write Operations

// ApplyEdits applies multiple edits atomically and returns the applied changes
// in the same order. Edits must be in reverse order (highest offset first).
// Every edit is validated before any is applied; on error the buffer is unchanged.
func (b *Buffer) ApplyEdits(edits []Edit) ([]Change, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return nil, ErrEditsOverlap
		}
	}

	textLen := ByteOffset(len(b.text))
	for _, edit := range edits {
		if !edit.Range.IsValid() {
			return nil, ErrRangeInvalid
		}
		if edit.Range.Start < 0 || edit.Range.End > textLen {
			return nil, ErrOffsetOutOfRange
		}
	}

	// Edits are in reverse order, so build the result from the front by
	// walking them backwards.
	var sb strings.Builder
	sb.Grow(len(b.text))
	changes := make([]Change, len(edits))
	pos := ByteOffset(0)
	for i := len(edits) - 1; i >= 0; i-- {
		edit := edits[i]
		sb.WriteString(b.text[pos:edit.Range.Start])
		sb.WriteString(edit.NewText)
		pos = edit.Range.End
		changes[i] = Change{
			Range:   edit.Range,
			OldText: b.text[edit.Range.Start:edit.Range.End],
			NewText: edit.NewText,
		}
	}
	sb.WriteString(b.text[pos:])

	b.setText(sb.String())
	return changes, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetTabWidth sets the buffer's tab width. Widths below 1 are rejected.
func (b *Buffer) SetTabWidth(width int) error {
	if width < 1 {
		return ErrInvalidTabWidth
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tabWidth = width
	return nil
}

// Reset replaces the whole content, as when reloading from disk.
// Like NewBufferFromString it keeps the text verbatim.
func (b *Buffer) Reset(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setText(text)
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	// text and lines are never mutated in place, so sharing is safe.
	return &Snapshot{
		text:       b.text,
		lines:      b.lines,
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}

func lineStart(lines []indent.Line, text string, line uint32) ByteOffset {
	if int(line) >= len(lines) {
		return ByteOffset(len(text))
	}
	return lines[line].Start
}

func offsetToPoint(lines []indent.Line, offset ByteOffset) Point {
	// Binary search for the last line starting at or before offset.
	lo, hi := 0, len(lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lines[mid].Start <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	col := offset - lines[lo].Start
	if col < 0 {
		col = 0
	}
	return Point{Line: uint32(lo), Column: uint32(col)}
}
