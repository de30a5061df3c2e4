package indent

// Kind classifies how a line's indentation counts toward mixing.
type Kind uint8

const (
	KindNone   Kind = iota // No significant indentation
	KindTabs               // Starts with a tab
	KindSpaces             // Starts with a tab-worthy run of spaces
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTabs:
		return "tabs"
	case KindSpaces:
		return "spaces"
	default:
		return "unknown"
	}
}

// Classify returns the indentation kind of a single line.
// A space-led line is significant only when its space run reaches tabWidth
// or is directly followed by a tab.
func Classify(text string, tabWidth int) Kind {
	if len(text) == 0 {
		return KindNone
	}
	switch text[0] {
	case '\t':
		return KindTabs
	case ' ':
		run := 0
		for i := 0; i < len(text); i++ {
			switch text[i] {
			case ' ':
				run++
				if run >= tabWidth {
					return KindSpaces
				}
			case '\t':
				return KindSpaces
			default:
				return KindNone
			}
		}
	}
	return KindNone
}

// Detect reports whether lines mix tab-indented and space-indented lines.
// Scanning stops as soon as both kinds have been seen.
func Detect(lines []Line, tabWidth int) (bool, error) {
	if err := checkInput(lines, tabWidth); err != nil {
		return false, err
	}

	var tabs, spaces bool
	for _, l := range lines {
		switch Classify(l.Text, tabWidth) {
		case KindTabs:
			tabs = true
		case KindSpaces:
			spaces = true
		}
		if tabs && spaces {
			return true, nil
		}
	}
	return false, nil
}

// Report summarizes the indentation of every line.
type Report struct {
	TabLines   int  // Lines starting with a tab
	SpaceLines int  // Lines starting with a significant space run
	FirstTab   int  // Index of the first tab line, or -1
	FirstSpace int  // Index of the first space line, or -1
	Mixed      bool // Both kinds are present
}

// Analyze scans all lines and returns a Report.
// Report.Mixed always agrees with Detect.
func Analyze(lines []Line, tabWidth int) (Report, error) {
	r := Report{FirstTab: -1, FirstSpace: -1}
	if err := checkInput(lines, tabWidth); err != nil {
		return r, err
	}

	for i, l := range lines {
		switch Classify(l.Text, tabWidth) {
		case KindTabs:
			if r.TabLines == 0 {
				r.FirstTab = i
			}
			r.TabLines++
		case KindSpaces:
			if r.SpaceLines == 0 {
				r.FirstSpace = i
			}
			r.SpaceLines++
		}
	}
	r.Mixed = r.TabLines > 0 && r.SpaceLines > 0
	return r, nil
}
