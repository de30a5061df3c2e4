package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/mixedtabs/internal/engine/buffer"
	"github.com/dshills/mixedtabs/internal/engine/history"
	"github.com/dshills/mixedtabs/internal/indent"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// Snapshot is a read-only view of a document revision.
	Snapshot = buffer.Snapshot
)

// Conversion selects the direction of an indentation rewrite.
type Conversion uint8

const (
	ConvertTabify Conversion = iota
	ConvertUntabify
)

// String returns the undo transaction name of the conversion.
func (c Conversion) String() string {
	switch c {
	case ConvertTabify:
		return "Tabify"
	case ConvertUntabify:
		return "Untabify"
	default:
		return "Unknown"
	}
}

// Replacements computes the conversion's replacements for lines.
func (c Conversion) Replacements(lines []indent.Line, tabWidth int) ([]indent.Replacement, error) {
	switch c {
	case ConvertTabify:
		return indent.Tabify(lines, tabWidth)
	case ConvertUntabify:
		return indent.Untabify(lines, tabWidth)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownConversion, c)
	}
}

// ParseConversion parses "tabify" or "untabify" (case-insensitive).
func ParseConversion(s string) (Conversion, error) {
	switch strings.ToLower(s) {
	case "tabify":
		return ConvertTabify, nil
	case "untabify":
		return ConvertUntabify, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownConversion, s)
	}
}

// Document is a buffer bound to a file with undo history.
type Document struct {
	mu sync.Mutex

	id   string
	path string
	buf  *buffer.Buffer
	hist *history.History

	savedRev RevisionID
	caret    ByteOffset

	tabWidth       int
	maxUndoEntries int
	readOnly       bool
}

// New creates an unsaved document with the given content.
// It returns ErrInvalidTabWidth when an option sets a width below 1.
func New(content string, opts ...Option) (*Document, error) {
	d := newDocument("", opts)
	if err := d.init(buffer.NewBufferFromString(content)); err != nil {
		return nil, err
	}
	return d, nil
}

// Open loads a document from disk. The file content is kept byte for byte,
// including mixed line terminators.
func Open(path string, opts ...Option) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	buf, err := buffer.NewBufferFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	d := newDocument(abs, opts)
	if err := d.init(buf); err != nil {
		return nil, err
	}
	return d, nil
}

func newDocument(path string, opts []Option) *Document {
	d := &Document{
		id:             uuid.NewString(),
		path:           path,
		tabWidth:       DefaultTabWidth,
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) init(buf *buffer.Buffer) error {
	if err := buf.SetTabWidth(d.tabWidth); err != nil {
		return fmt.Errorf("%w: got %d", ErrInvalidTabWidth, d.tabWidth)
	}
	d.buf = buf
	d.hist = history.NewHistory(buf, d.maxUndoEntries)
	d.savedRev = buf.RevisionID()
	return nil
}

// ID returns the document's unique identifier.
func (d *Document) ID() string {
	return d.id
}

// Path returns the absolute file path, or "" for unsaved documents.
func (d *Document) Path() string {
	return d.path
}

// Snapshot returns an immutable view of the current revision.
func (d *Document) Snapshot() *Snapshot {
	return d.buf.Snapshot()
}

// Text returns the current content.
func (d *Document) Text() string {
	return d.buf.Text()
}

// TabWidth returns the document's tab width.
func (d *Document) TabWidth() int {
	return d.buf.TabWidth()
}

// Dirty returns true if the document has unsaved changes.
func (d *Document) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.RevisionID() != d.savedRev
}

// Caret returns the tracked caret offset.
func (d *Document) Caret() ByteOffset {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.caret
}

// SetCaret moves the tracked caret, clamped to the document.
func (d *Document) SetCaret(offset ByteOffset) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.caret = max(0, min(offset, d.buf.Len()))
}

// Reload re-reads the file from disk, discarding undo history.
func (d *Document) Reload() error {
	if d.path == "" {
		return ErrNoPath
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("reloading %s: %w", d.path, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.buf.Reset(string(data))
	d.hist.Clear()
	d.savedRev = d.buf.RevisionID()
	d.caret = min(d.caret, d.buf.Len())
	return nil
}

// Save writes the content back to the file.
// The file is replaced via a temporary file in the same directory.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	snap := d.buf.Snapshot()
	if err := writeFileAtomic(d.path, []byte(snap.Text())); err != nil {
		return fmt.Errorf("saving %s: %w", d.path, err)
	}
	d.savedRev = snap.RevisionID()
	return nil
}

// ApplyReplacements applies reps, computed from revision rev, as a single
// undoable transaction named name. Either every replacement is applied or
// none is.
func (d *Document) ApplyReplacements(name string, rev RevisionID, reps []indent.Replacement) error {
	if d.readOnly {
		return ErrReadOnly
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.RevisionID() != rev {
		return ErrStaleSnapshot
	}
	if len(reps) == 0 {
		return nil
	}

	return d.hist.Transaction(name, func() error {
		changes, err := d.buf.ApplyEdits(buffer.EditsFromReplacements(reps))
		if err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(name), err)
		}
		op := history.NewOperation(changes)
		d.hist.Record(op)
		d.caret = op.MapOffset(d.caret)
		return nil
	})
}

// Convert rewrites the document's indentation and returns the number of
// lines changed.
func (d *Document) Convert(c Conversion) (int, error) {
	snap := d.buf.Snapshot()

	reps, err := c.Replacements(snap.Lines(), snap.TabWidth())
	if err != nil {
		return 0, err
	}
	if err := d.ApplyReplacements(c.String(), snap.RevisionID(), reps); err != nil {
		return 0, err
	}
	return len(reps), nil
}

// Detect reports whether the current revision mixes tabs and spaces.
func (d *Document) Detect() (bool, error) {
	snap := d.buf.Snapshot()
	return indent.Detect(snap.Lines(), snap.TabWidth())
}

// Undo reverts the last transaction and returns its name.
func (d *Document) Undo() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hist.Undo()
}

// Redo re-applies the last undone transaction and returns its name.
func (d *Document) Redo() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hist.Redo()
}

// CanUndo returns true if undo is available.
func (d *Document) CanUndo() bool {
	return d.hist.CanUndo()
}

func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
