package buffer

import (
	"fmt"

	"github.com/dshills/mixedtabs/internal/indent"
)

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// EditFromReplacement converts an indentation replacement into an Edit.
func EditFromReplacement(r indent.Replacement) Edit {
	return Edit{
		Range:   Range{Start: r.Start, End: r.End()},
		NewText: r.Text,
	}
}

// EditsFromReplacements converts replacements in ascending order into edits
// in the reverse order expected by ApplyEdits.
func EditsFromReplacements(reps []indent.Replacement) []Edit {
	edits := make([]Edit, len(reps))
	for i, r := range reps {
		edits[len(reps)-1-i] = EditFromReplacement(r)
	}
	return edits
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// Change records an applied edit together with the text it replaced.
// It is used by the history package for undo/redo.
type Change struct {
	Range   Range  // Original range that was affected
	OldText string // Text that was removed
	NewText string // Text that was added
}

// NewRange returns the range the new text occupies after the change.
func (c Change) NewRange() Range {
	return Range{Start: c.Range.Start, End: c.Range.Start + ByteOffset(len(c.NewText))}
}

// Invert returns the inverse change that would undo this change.
func (c Change) Invert() Change {
	return Change{
		Range:   c.NewRange(),
		OldText: c.NewText,
		NewText: c.OldText,
	}
}

// ToEdit converts a Change to an Edit for reapplication.
func (c Change) ToEdit() Edit {
	return Edit{Range: c.Range, NewText: c.NewText}
}
