package indent

// Advance returns the column after placing ch at col.
// Only tab has a width other than one. tabWidth must be at least 1;
// callers validate it once before scanning.
func Advance(col int, ch byte, tabWidth int) int {
	if ch == '\t' {
		return col + tabWidth - col%tabWidth
	}
	return col + 1
}

// Column returns the visual column reached after the leading whitespace of s.
func Column(s string, tabWidth int) (int, error) {
	if err := checkTabWidth(tabWidth); err != nil {
		return 0, err
	}
	col := 0
	for i := 0; i < leadingLen(s); i++ {
		col = Advance(col, s[i], tabWidth)
	}
	return col, nil
}

// LeadingWhitespace returns the maximal prefix of s made of spaces and tabs.
func LeadingWhitespace(s string) string {
	return s[:leadingLen(s)]
}

func leadingLen(s string) int {
	n := 0
	for n < len(s) && isBlank(s[n]) {
		n++
	}
	return n
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

// repeat returns tabs tab characters followed by spaces space characters.
func repeat(tabs, spaces int) string {
	b := make([]byte, tabs+spaces)
	for i := 0; i < tabs; i++ {
		b[i] = '\t'
	}
	for i := tabs; i < len(b); i++ {
		b[i] = ' '
	}
	return string(b)
}
