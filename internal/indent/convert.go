package indent

// Tabify rewrites leading whitespace into tabs followed by fewer than
// tabWidth spaces. Lines are touched only when a tab follows a space or
// a run of spaces reaches tabWidth.
func Tabify(lines []Line, tabWidth int) ([]Replacement, error) {
	if err := checkInput(lines, tabWidth); err != nil {
		return nil, err
	}

	var reps []Replacement
	for _, l := range lines {
		if r, ok := tabifyLine(l, tabWidth); ok {
			reps = append(reps, r)
		}
	}
	return reps, nil
}

func tabifyLine(l Line, tabWidth int) (Replacement, bool) {
	var (
		tabsAfterSpaces bool
		column          int
		span            int
		largestRun      int
		currentRun      int
	)

scan:
	for i := 0; i < len(l.Text); i++ {
		switch l.Text[i] {
		case ' ':
			currentRun++
			largestRun = max(largestRun, currentRun)
		case '\t':
			// Sticky once set; the run counter is not.
			if largestRun > 0 {
				tabsAfterSpaces = true
			}
			currentRun = 0
		default:
			break scan
		}
		column = Advance(column, l.Text[i], tabWidth)
		span++
	}

	if !tabsAfterSpaces && largestRun < tabWidth {
		return Replacement{}, false
	}
	return Replacement{
		Start:  l.Start,
		Length: span,
		Text:   repeat(column/tabWidth, column%tabWidth),
	}, true
}

// Untabify rewrites leading whitespace containing a tab into spaces only.
// Space-only indentation is never rewritten.
func Untabify(lines []Line, tabWidth int) ([]Replacement, error) {
	if err := checkInput(lines, tabWidth); err != nil {
		return nil, err
	}

	var reps []Replacement
	for _, l := range lines {
		if r, ok := untabifyLine(l, tabWidth); ok {
			reps = append(reps, r)
		}
	}
	return reps, nil
}

func untabifyLine(l Line, tabWidth int) (Replacement, bool) {
	var (
		hasTabs bool
		column  int
	)

	span := leadingLen(l.Text)
	for i := 0; i < span; i++ {
		if l.Text[i] == '\t' {
			hasTabs = true
		}
		column = Advance(column, l.Text[i], tabWidth)
	}

	if !hasTabs {
		return Replacement{}, false
	}
	return Replacement{
		Start:  l.Start,
		Length: span,
		Text:   repeat(0, column),
	}, true
}

// Apply returns text with reps applied. Replacements must be sorted by
// Start and must not overlap. It is intended for hosts working on plain
// strings; offsets are relative to the start of text.
func Apply(text string, reps []Replacement) (string, error) {
	if len(reps) == 0 {
		return text, nil
	}

	out := make([]byte, 0, len(text))
	var pos int64
	for i, r := range reps {
		if r.Start < pos || r.Length < 0 || r.End() > int64(len(text)) {
			return "", &LineError{Index: i, Line: Line{Start: r.Start}, Err: ErrLineOutOfRange}
		}
		out = append(out, text[pos:r.Start]...)
		out = append(out, r.Text...)
		pos = r.End()
	}
	out = append(out, text[pos:]...)
	return string(out), nil
}
