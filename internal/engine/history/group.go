package history

import (
	"errors"
	"fmt"
)

// BeginGroup starts a named transaction.
func (h *History) BeginGroup(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.group != nil {
		return ErrNestedGroup
	}
	h.group = &entry{name: name}
	return nil
}

// EndGroup commits the current transaction as one undo unit.
// An empty transaction leaves the history unchanged.
func (h *History) EndGroup() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.group == nil {
		return ErrNoActiveGroup
	}
	g := h.group
	h.group = nil

	if len(g.operations) > 0 {
		h.pushLocked(g)
	}
	return nil
}

// CancelGroup discards the current transaction and reverts every operation
// recorded in it.
func (h *History) CancelGroup() error {
	h.mu.Lock()
	g := h.group
	h.group = nil
	h.mu.Unlock()

	if g == nil {
		return ErrNoActiveGroup
	}
	if err := g.revert(h.buf); err != nil {
		return fmt.Errorf("%w: %v", ErrRollbackFailed, err)
	}
	return nil
}

// Transaction executes fn within a named undo unit.
// If fn returns an error, the transaction is cancelled and its operations
// are reverted; otherwise they are committed together.
func (h *History) Transaction(name string, fn func() error) error {
	if err := h.BeginGroup(name); err != nil {
		return err
	}

	if err := fn(); err != nil {
		if rbErr := h.CancelGroup(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return h.EndGroup()
}
