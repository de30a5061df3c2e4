// Package history provides undo/redo for buffer edit batches.
//
// # Operations
//
// An Operation records one batch of changes applied atomically to a buffer,
// together with the text each change replaced. Undoing an operation applies
// the inverse batch; redoing applies the original batch again.
//
// # Transactions
//
// Operations recorded inside a transaction undo together:
//
//	err := h.Transaction("Tabify", func() error {
//	    changes, err := buf.ApplyEdits(edits)
//	    if err != nil {
//	        return err
//	    }
//	    h.Record(NewOperation(changes))
//	    return nil
//	})
//
// When the function fails, operations already recorded in the transaction
// are rolled back and nothing is added to the history.
//
// # Offset Tracking
//
// MapOffset moves a caret or selection anchor through an operation so hosts
// can restore positions after an edit, undo or redo.
package history
