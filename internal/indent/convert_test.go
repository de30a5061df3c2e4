package indent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		tabWidth int
		want     *Replacement
	}{
		{name: "eight spaces", text: "        x", tabWidth: 4, want: &Replacement{Length: 8, Text: "\t\t"}},
		{name: "six spaces", text: "      x", tabWidth: 4, want: &Replacement{Length: 6, Text: "\t  "}},
		{name: "exact width", text: "    x", tabWidth: 4, want: &Replacement{Length: 4, Text: "\t"}},
		{name: "short spaces", text: "  x", tabWidth: 4, want: nil},
		{name: "already tabs", text: "\t\tx", tabWidth: 4, want: nil},
		{name: "canonical tab plus spaces", text: "\t  x", tabWidth: 4, want: nil},
		{name: "spaces then tab", text: "  \tx", tabWidth: 4, want: &Replacement{Length: 3, Text: "\t"}},
		{name: "empty", text: "", tabWidth: 4, want: nil},
		{name: "no indent", text: "x", tabWidth: 4, want: nil},
		{name: "whitespace only", text: "        ", tabWidth: 4, want: &Replacement{Length: 8, Text: "\t\t"}},
		{name: "width one", text: "  x", tabWidth: 1, want: &Replacement{Length: 2, Text: "\t\t"}},
		// The run counter resets at the tab but the flag stays set.
		{name: "space tab space", text: " \t x", tabWidth: 4, want: &Replacement{Length: 3, Text: "\t "}},
		{name: "tab then short spaces then tab", text: "\t  \tx", tabWidth: 4, want: &Replacement{Length: 4, Text: "\t\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reps, err := Tabify([]Line{{Start: 10, Text: tt.text}}, tt.tabWidth)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, reps)
				return
			}
			require.Len(t, reps, 1)
			assert.Equal(t, int64(10), reps[0].Start)
			assert.Equal(t, tt.want.Length, reps[0].Length)
			assert.Equal(t, tt.want.Text, reps[0].Text)
		})
	}
}

func TestTabifyRunResetsAtTab(t *testing.T) {
	// Two short runs separated by a tab: the tab follows spaces, so the
	// line is rewritten even though no single run reaches the width.
	reps, err := Tabify(lines("  \t  x"), 8)
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, "\t  ", reps[0].Text)

	// Without the tab the same amount of spaces is left alone.
	reps, err = Tabify(lines("    x"), 8)
	require.NoError(t, err)
	assert.Empty(t, reps)
}

func TestUntabify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		tabWidth int
		want     *Replacement
	}{
		{name: "two tabs", text: "\t\tx", tabWidth: 4, want: &Replacement{Length: 2, Text: "        "}},
		{name: "spaces then tab", text: "  \tx", tabWidth: 4, want: &Replacement{Length: 3, Text: "    "}},
		{name: "tab then spaces", text: "\t  x", tabWidth: 8, want: &Replacement{Length: 3, Text: strings.Repeat(" ", 10)}},
		{name: "spaces only", text: "            x", tabWidth: 4, want: nil},
		{name: "empty", text: "", tabWidth: 4, want: nil},
		{name: "no indent", text: "x\ty", tabWidth: 4, want: nil},
		{name: "tab only line", text: "\t", tabWidth: 2, want: &Replacement{Length: 1, Text: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reps, err := Untabify([]Line{{Start: 3, Text: tt.text}}, tt.tabWidth)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, reps)
				return
			}
			require.Len(t, reps, 1)
			assert.Equal(t, int64(3), reps[0].Start)
			assert.Equal(t, tt.want.Length, reps[0].Length)
			assert.Equal(t, tt.want.Text, reps[0].Text)
		})
	}
}

func TestConvertInvalidTabWidth(t *testing.T) {
	_, err := Tabify(lines("    x"), 0)
	require.ErrorIs(t, err, ErrInvalidTabWidth)

	_, err = Untabify(lines("\tx"), -2)
	require.ErrorIs(t, err, ErrInvalidTabWidth)
}

func TestConvertMultipleLines(t *testing.T) {
	text := "func f() {\n        a()\n\tb()\n  c()\n}\n"
	ls := SplitLines(text)

	reps, err := Tabify(ls, 4)
	require.NoError(t, err)
	require.Len(t, reps, 1)

	out, err := Apply(text, reps)
	require.NoError(t, err)
	assert.Equal(t, "func f() {\n\t\ta()\n\tb()\n  c()\n}\n", out)

	reps, err = Untabify(SplitLines(out), 4)
	require.NoError(t, err)
	require.Len(t, reps, 2)

	out, err = Apply(out, reps)
	require.NoError(t, err)
	assert.Equal(t, "func f() {\n        a()\n    b()\n  c()\n}\n", out)
}

// whitespacePrefixes enumerates every space/tab string up to length n.
func whitespacePrefixes(n int) []string {
	out := []string{""}
	frontier := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, p := range frontier {
			next = append(next, p+" ", p+"\t")
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func TestConvertPreservesColumn(t *testing.T) {
	for _, ws := range whitespacePrefixes(6) {
		for w := 1; w <= 8; w++ {
			text := ws + "x"
			want, err := Column(ws, w)
			require.NoError(t, err)

			for _, convert := range []func([]Line, int) ([]Replacement, error){Tabify, Untabify} {
				reps, err := convert([]Line{{Text: text}}, w)
				require.NoError(t, err)
				out, err := Apply(text, reps)
				require.NoError(t, err)

				got, err := Column(out, w)
				require.NoError(t, err)
				assert.Equal(t, want, got, "prefix %q width %d", ws, w)
				assert.True(t, strings.HasSuffix(out, "x"))
				assert.Equal(t, "x", out[len(LeadingWhitespace(out)):])
			}
		}
	}
}

func TestConvertIdempotent(t *testing.T) {
	for _, ws := range whitespacePrefixes(6) {
		for w := 1; w <= 8; w++ {
			text := ws + "x"

			for _, convert := range []func([]Line, int) ([]Replacement, error){Tabify, Untabify} {
				reps, err := convert(SplitLines(text), w)
				require.NoError(t, err)
				once, err := Apply(text, reps)
				require.NoError(t, err)

				again, err := convert(SplitLines(once), w)
				require.NoError(t, err)
				assert.Empty(t, again, "prefix %q width %d", ws, w)
			}
		}
	}
}

func TestCanonicalFormsUntouched(t *testing.T) {
	for w := 1; w <= 8; w++ {
		for tabs := 0; tabs < 3; tabs++ {
			for spaces := 0; spaces < w; spaces++ {
				reps, err := Tabify(lines(repeat(tabs, spaces)+"x"), w)
				require.NoError(t, err)
				assert.Empty(t, reps)
			}
		}
		for spaces := 0; spaces < 20; spaces++ {
			reps, err := Untabify(lines(repeat(0, spaces)+"x"), w)
			require.NoError(t, err)
			assert.Empty(t, reps)
		}
	}
}

func TestApplyRejectsOverlap(t *testing.T) {
	_, err := Apply("abcdef", []Replacement{{Start: 2, Length: 2}, {Start: 3, Length: 1}})
	require.ErrorIs(t, err, ErrLineOutOfRange)

	_, err = Apply("abc", []Replacement{{Start: 2, Length: 5}})
	require.ErrorIs(t, err, ErrLineOutOfRange)
}
