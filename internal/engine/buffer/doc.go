// Package buffer provides a thread-safe text buffer for documents whose
// indentation is analyzed and rewritten by the indent package.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - A line index mapping line numbers to byte offsets
//   - Read-only snapshots exposing lines as indent.Line values
//   - Atomic application of edit batches
//   - Line ending detection (text is never rewritten to match it)
//   - Revision tracking so callers can tell which snapshot an edit targets
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("\tfoo\n    bar\n")
//
//	snap := buf.Snapshot()
//	mixed, _ := indent.Detect(snap.Lines(), snap.TabWidth())
//
//	reps, _ := indent.Tabify(snap.Lines(), snap.TabWidth())
//	changes, err := buf.ApplyEdits(buffer.EditsFromReplacements(reps))
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Use Snapshot() to obtain a consistent
// read-only view across several reads.
package buffer
