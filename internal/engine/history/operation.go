package history

import "github.com/dshills/mixedtabs/internal/engine/buffer"

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Operation is one atomically applied batch of changes.
// Changes are stored in the order returned by buffer.ApplyEdits
// (highest offset first).
type Operation struct {
	Changes []buffer.Change
}

// NewOperation creates an operation from applied changes.
func NewOperation(changes []buffer.Change) *Operation {
	return &Operation{Changes: changes}
}

// IsEmpty returns true if the operation has no changes.
func (op *Operation) IsEmpty() bool {
	return len(op.Changes) == 0
}

// Edits returns the edits that re-apply the operation to the original text.
func (op *Operation) Edits() []buffer.Edit {
	edits := make([]buffer.Edit, len(op.Changes))
	for i, c := range op.Changes {
		edits[i] = c.ToEdit()
	}
	return edits
}

// InverseEdits returns the edits that restore the original text from the
// text produced by the operation. Each range is shifted by the length delta
// of the changes before it.
func (op *Operation) InverseEdits() []buffer.Edit {
	edits := make([]buffer.Edit, len(op.Changes))
	var delta ByteOffset
	for i := len(op.Changes) - 1; i >= 0; i-- {
		c := op.Changes[i]
		start := c.Range.Start + delta
		edits[i] = buffer.Edit{
			Range:   buffer.NewRange(start, start+ByteOffset(len(c.NewText))),
			NewText: c.OldText,
		}
		delta += ByteOffset(len(c.NewText)) - c.Range.Len()
	}
	return edits
}

// Apply re-applies the operation to buf.
func (op *Operation) Apply(buf *buffer.Buffer) error {
	_, err := buf.ApplyEdits(op.Edits())
	return err
}

// Revert undoes the operation on buf.
func (op *Operation) Revert(buf *buffer.Buffer) error {
	_, err := buf.ApplyEdits(op.InverseEdits())
	return err
}

// MapOffset maps an offset in the original text to the text produced by the
// operation. An offset inside a replaced span moves to the end of the new
// text (positive tracking).
func (op *Operation) MapOffset(offset ByteOffset) ByteOffset {
	var delta ByteOffset
	for i := len(op.Changes) - 1; i >= 0; i-- {
		c := op.Changes[i]
		if offset < c.Range.Start {
			break
		}
		if offset < c.Range.End || (c.Range.IsEmpty() && offset == c.Range.Start) {
			return c.Range.Start + delta + ByteOffset(len(c.NewText))
		}
		delta += ByteOffset(len(c.NewText)) - c.Range.Len()
	}
	return offset + delta
}
