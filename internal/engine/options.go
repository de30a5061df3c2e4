package engine

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
)

// Option configures a Document during creation.
type Option func(*Document)

// WithTabWidth sets the tab width for the document. New and Open fail
// with ErrInvalidTabWidth when width is below 1.
func WithTabWidth(width int) Option {
	return func(d *Document) {
		d.tabWidth = width
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(d *Document) {
		if max > 0 {
			d.maxUndoEntries = max
		}
	}
}

// WithReadOnly makes the document reject edits.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}
