// Package indent detects mixed tab/space indentation and converts leading
// whitespace between tabs and spaces.
//
// All functions are pure: they read a slice of lines and return either a
// verdict or a list of replacements. The caller owns the text and is
// responsible for applying replacements as one atomic edit.
//
// # Column Model
//
// A space advances the visual column by one. A tab advances it to the next
// multiple of the tab width:
//
//	col += tabWidth - col%tabWidth
//
// # Detection
//
// A line whose first character is a tab starts with tabs. A line whose first
// character is a space only counts as starting with spaces when its leading
// space run reaches the tab width or is followed by a tab. Short space runs
// are ordinary alignment and never make a document mixed.
//
//	mixed, err := indent.Detect(indent.SplitLines(text), 4)
//
// # Conversion
//
// Tabify rewrites leading whitespace into the fewest tabs plus remainder
// spaces; Untabify rewrites it into spaces only. Both preserve the visual
// column and leave lines already in canonical form untouched.
//
// Replacements come back in ascending line order, which is the order Apply
// expects. Hosts whose edit API wants the highest offset first reverse the
// list before applying it.
//
//	reps, err := indent.Tabify(lines, 4)
//	out, err := indent.Apply(text, reps)
package indent
