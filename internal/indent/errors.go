package indent

import (
	"errors"
	"fmt"
)

// Errors returned by indent operations.
var (
	// ErrInvalidTabWidth indicates a tab width below 1.
	ErrInvalidTabWidth = errors.New("tab width must be at least 1")

	// ErrLineOutOfRange indicates a line whose extent is negative or
	// overlaps the previous line.
	ErrLineOutOfRange = errors.New("line out of range")
)

// LineError reports an invalid line in the input.
type LineError struct {
	Index int   // Index of the offending line
	Line  Line  // The offending line
	Err   error // Underlying sentinel error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d at offset %d: %v", e.Index, e.Line.Start, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

func checkTabWidth(tabWidth int) error {
	if tabWidth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidTabWidth, tabWidth)
	}
	return nil
}

// checkLines validates each line against its own extent and its predecessor.
func checkLines(lines []Line) error {
	var prevEnd int64
	for i, l := range lines {
		if l.Start < 0 || (i > 0 && l.Start < prevEnd) {
			return &LineError{Index: i, Line: l, Err: ErrLineOutOfRange}
		}
		prevEnd = l.End()
	}
	return nil
}

func checkInput(lines []Line, tabWidth int) error {
	if err := checkTabWidth(tabWidth); err != nil {
		return err
	}
	return checkLines(lines)
}
