// Package engine hosts documents whose indentation is checked and converted.
//
// A Document combines a buffer, its undo history and the file it was loaded
// from. It is the host collaborator of the indent package: it hands out
// immutable snapshots, and applies replacement batches computed from those
// snapshots as single undoable transactions.
//
// # Architecture
//
//   - buffer: text storage, line index, snapshots and atomic edit batches
//   - history: undo/redo of edit batches with named transactions
//
// # Basic Usage
//
//	doc, err := engine.Open("main.go", engine.WithTabWidth(4))
//	if err != nil {
//	    return err
//	}
//
//	n, err := doc.Convert(engine.ConvertTabify)
//	if err != nil {
//	    return err
//	}
//	if n > 0 {
//	    err = doc.Save()
//	}
//
// # Stale Snapshots
//
// A replacement batch is only valid for the revision it was computed from.
// ApplyReplacements rejects a batch whose revision no longer matches the
// buffer with ErrStaleSnapshot and leaves the document untouched.
//
// # Thread Safety
//
// All Document methods are thread-safe. Mutating operations are serialized
// so a snapshot check and the edit it guards happen atomically.
package engine
