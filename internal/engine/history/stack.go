package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/mixedtabs/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNothingToRedo  = errors.New("nothing to redo")
	ErrNestedGroup    = errors.New("transaction already in progress")
	ErrNoActiveGroup  = errors.New("no transaction in progress")
	ErrRollbackFailed = errors.New("transaction rollback failed")
)

// DefaultMaxEntries is used when NewHistory is given a non-positive limit.
const DefaultMaxEntries = 1000

// entry is one undo unit: a named list of operations.
type entry struct {
	name       string
	operations []*Operation
}

// revert undoes operations newest first.
func (e *entry) revert(buf *buffer.Buffer) error {
	for i := len(e.operations) - 1; i >= 0; i-- {
		if err := e.operations[i].Revert(buf); err != nil {
			// Put back what was already reverted.
			for j := i + 1; j < len(e.operations); j++ {
				_ = e.operations[j].Apply(buf)
			}
			return err
		}
	}
	return nil
}

// apply redoes operations oldest first.
func (e *entry) apply(buf *buffer.Buffer) error {
	for i, op := range e.operations {
		if err := op.Apply(buf); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = e.operations[j].Revert(buf)
			}
			return err
		}
	}
	return nil
}

// History manages undo/redo state for a buffer.
type History struct {
	mu  sync.Mutex
	buf *buffer.Buffer

	undoStack []*entry
	redoStack []*entry

	// Grouping state
	group *entry

	maxEntries int
}

// NewHistory creates a new history manager for buf.
func NewHistory(buf *buffer.Buffer, maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		buf:        buf,
		maxEntries: maxEntries,
	}
}

// Record adds an already applied operation to the history.
// Inside a transaction the operation joins the transaction's undo unit.
// Clears the redo stack.
func (h *History) Record(op *Operation) {
	if op == nil || op.IsEmpty() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.group != nil {
		h.group.operations = append(h.group.operations, op)
		return
	}

	h.pushLocked(&entry{name: "Edit", operations: []*Operation{op}})
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(e *entry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent undo unit and returns its name.
func (h *History) Undo() (string, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return "", ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := e.revert(h.buf); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, e)
		h.mu.Unlock()
		return "", fmt.Errorf("undo %s: %w", e.name, err)
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, e)
	h.mu.Unlock()
	return e.name, nil
}

// Redo re-applies the most recently undone unit and returns its name.
func (h *History) Redo() (string, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return "", ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := e.apply(h.buf); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, e)
		h.mu.Unlock()
		return "", fmt.Errorf("redo %s: %w", e.name, err)
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, e)
	h.mu.Unlock()
	return e.name, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.group = nil
}
