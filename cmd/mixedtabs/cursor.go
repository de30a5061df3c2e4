package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/mixedtabs/internal/engine"
)

// cursor is a 1-based LINE:COL position. Columns count bytes.
type cursor struct {
	line int
	col  int
}

func parseCursor(s string) (cursor, error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return cursor{}, fmt.Errorf("cursor %q: want LINE:COL", s)
	}
	line, err := strconv.Atoi(l)
	if err != nil || line < 1 {
		return cursor{}, fmt.Errorf("cursor %q: line must be a positive number", s)
	}
	col, err := strconv.Atoi(c)
	if err != nil || col < 1 {
		return cursor{}, fmt.Errorf("cursor %q: column must be a positive number", s)
	}
	return cursor{line: line, col: col}, nil
}

// offset resolves c to a byte offset in snap. The column may sit one past
// the last character of the line.
func (c cursor) offset(snap *engine.Snapshot) (engine.ByteOffset, error) {
	if uint32(c.line) > snap.LineCount() {
		return 0, fmt.Errorf("cursor %s: file has %d lines", c, snap.LineCount())
	}
	idx := uint32(c.line - 1)
	if c.col-1 > len(snap.LineText(idx)) {
		return 0, fmt.Errorf("cursor %s: line %d has %d bytes", c, c.line, len(snap.LineText(idx)))
	}
	return snap.LineStartOffset(idx) + engine.ByteOffset(c.col-1), nil
}

func cursorAt(snap *engine.Snapshot, offset engine.ByteOffset) cursor {
	p := snap.OffsetToPoint(offset)
	return cursor{line: int(p.Line) + 1, col: int(p.Column) + 1}
}

func (c cursor) String() string {
	return fmt.Sprintf("%d:%d", c.line, c.col)
}
