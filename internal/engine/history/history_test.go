package history

import (
	"errors"
	"testing"

	"github.com/dshills/mixedtabs/internal/engine/buffer"
)

// apply edits to buf and record them as one operation.
func applyAndRecord(t *testing.T, h *History, buf *buffer.Buffer, edits ...buffer.Edit) {
	t.Helper()
	changes, err := buf.ApplyEdits(edits)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	h.Record(NewOperation(changes))
}

// Operation Tests

func TestOperationInverseEdits(t *testing.T) {
	buf := buffer.NewBufferFromString("        a\n    b\n\tc\n")
	original := buf.Text()

	changes, err := buf.ApplyEdits([]buffer.Edit{
		buffer.NewEdit(buffer.NewRange(10, 14), "\t"),
		buffer.NewEdit(buffer.NewRange(0, 8), "\t\t"),
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if buf.Text() != "\t\ta\n\tb\n\tc\n" {
		t.Fatalf("unexpected text %q", buf.Text())
	}

	op := NewOperation(changes)
	if err := op.Revert(buf); err != nil {
		t.Fatalf("revert failed: %v", err)
	}
	if buf.Text() != original {
		t.Errorf("revert produced %q, want %q", buf.Text(), original)
	}

	if err := op.Apply(buf); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if buf.Text() != "\t\ta\n\tb\n\tc\n" {
		t.Errorf("reapply produced %q", buf.Text())
	}
}

func TestOperationMapOffset(t *testing.T) {
	// "        a\n    b\n" -> "\t\ta\n\tb\n"
	op := NewOperation([]buffer.Change{
		{Range: buffer.NewRange(10, 14), OldText: "    ", NewText: "\t"},
		{Range: buffer.NewRange(0, 8), OldText: "        ", NewText: "\t\t"},
	})

	tests := []struct {
		name string
		in   ByteOffset
		want ByteOffset
	}{
		{"inside first span", 3, 2},
		{"first content char", 8, 2},
		{"newline", 9, 3},
		{"inside second span", 11, 5},
		{"second content char", 14, 5},
		{"end", 16, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := op.MapOffset(tt.in); got != tt.want {
				t.Errorf("MapOffset(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// History Tests

func TestHistoryUndoRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("    x\n")
	h := NewHistory(buf, 0)

	applyAndRecord(t, h, buf, buffer.NewEdit(buffer.NewRange(0, 4), "\t"))

	if !h.CanUndo() {
		t.Fatal("expected undo available")
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}

	name, err := h.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if name != "Edit" {
		t.Errorf("expected name Edit, got %q", name)
	}
	if buf.Text() != "    x\n" {
		t.Errorf("undo produced %q", buf.Text())
	}

	if _, err := h.Redo(); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if buf.Text() != "\tx\n" {
		t.Errorf("redo produced %q", buf.Text())
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(buffer.NewBufferFromString(""), 10)

	if _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}

	h.Record(nil)
	h.Record(NewOperation(nil))
	if h.CanUndo() {
		t.Error("empty operations should not be recorded")
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	buf := buffer.NewBufferFromString("abcdef")
	h := NewHistory(buf, 2)

	for i := 0; i < 4; i++ {
		applyAndRecord(t, h, buf, buffer.NewEdit(buffer.NewRange(0, 0), "z"))
	}

	for i := 0; i < 2; i++ {
		if _, err := h.Undo(); err != nil {
			t.Fatalf("undo %d failed: %v", i, err)
		}
	}
	if _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected only 2 undo entries, got %v", err)
	}
	if buf.Text() != "zzabcdef" {
		t.Errorf("undo of the kept entries produced %q", buf.Text())
	}
}

func TestTransactionGroupsOperations(t *testing.T) {
	buf := buffer.NewBufferFromString("    a\n    b\n")
	h := NewHistory(buf, 0)

	err := h.Transaction("Tabify", func() error {
		applyAndRecord(t, h, buf, buffer.NewEdit(buffer.NewRange(6, 10), "\t"))
		applyAndRecord(t, h, buf, buffer.NewEdit(buffer.NewRange(0, 4), "\t"))
		return nil
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	name, err := h.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if name != "Tabify" {
		t.Errorf("expected Tabify, got %q", name)
	}
	if buf.Text() != "    a\n    b\n" {
		t.Errorf("undo produced %q", buf.Text())
	}
	if h.CanUndo() {
		t.Error("both operations should undo as one unit")
	}

	if name, err := h.Redo(); err != nil || name != "Tabify" {
		t.Errorf("expected redo of Tabify, got %q (%v)", name, err)
	}
}

func TestTransactionRollsBackOnError(t *testing.T) {
	buf := buffer.NewBufferFromString("    a\n")
	h := NewHistory(buf, 0)
	boom := errors.New("boom")

	err := h.Transaction("Untabify", func() error {
		applyAndRecord(t, h, buf, buffer.NewEdit(buffer.NewRange(0, 4), "\t"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if buf.Text() != "    a\n" {
		t.Errorf("rollback produced %q", buf.Text())
	}
	if h.CanUndo() {
		t.Error("failed transaction should leave no history")
	}
	if err := h.BeginGroup("next"); err != nil {
		t.Errorf("failed transaction should not stay open: %v", err)
	}
}

func TestNestedTransaction(t *testing.T) {
	h := NewHistory(buffer.NewBufferFromString(""), 0)

	err := h.Transaction("outer", func() error {
		return h.Transaction("inner", func() error { return nil })
	})
	if !errors.Is(err, ErrNestedGroup) {
		t.Errorf("expected ErrNestedGroup, got %v", err)
	}

	if err := h.EndGroup(); !errors.Is(err, ErrNoActiveGroup) {
		t.Errorf("expected ErrNoActiveGroup, got %v", err)
	}
}

func TestRecordClearsRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("    a")
	h := NewHistory(buf, 0)

	applyAndRecord(t, h, buf, buffer.NewEdit(buffer.NewRange(0, 4), "\t"))
	if _, err := h.Undo(); err != nil {
		t.Fatalf("undo failed: %v", err)
	}

	applyAndRecord(t, h, buf, buffer.NewEdit(buffer.NewRange(0, 1), ""))
	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("recording should clear redo, got %v", err)
	}

	h.Clear()
	if h.CanUndo() {
		t.Error("clear should drop undo entries")
	}
}
