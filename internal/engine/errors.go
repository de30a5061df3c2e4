package engine

import (
	"errors"

	"github.com/dshills/mixedtabs/internal/indent"
)

// Errors returned by engine operations.
var (
	// ErrStaleSnapshot indicates replacements computed from an older revision.
	ErrStaleSnapshot = errors.New("replacements computed from a stale snapshot")

	// ErrNoPath indicates a load or save on a document without a file.
	ErrNoPath = errors.New("document has no file path")

	// ErrReadOnly indicates an edit was attempted on a read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrInvalidTabWidth indicates a tab width below 1.
	ErrInvalidTabWidth = indent.ErrInvalidTabWidth

	// ErrUnknownConversion indicates an unrecognized conversion name.
	ErrUnknownConversion = errors.New("unknown conversion")
)
