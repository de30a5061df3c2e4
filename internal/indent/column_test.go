package indent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumn(t *testing.T) {
	tests := []struct {
		s        string
		tabWidth int
		want     int
	}{
		{"", 4, 0},
		{"x", 4, 0},
		{"  ", 4, 2},
		{"\t", 4, 4},
		{"  \t", 4, 4},
		{"    \t", 4, 8},
		{"\t  ", 4, 6},
		{"\t \t", 8, 16},
		{" \t", 1, 2},
		{"\tx\t", 4, 4},
	}

	for _, tt := range tests {
		got, err := Column(tt.s, tt.tabWidth)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%q width %d", tt.s, tt.tabWidth)
	}
}

func TestColumnInvalidTabWidth(t *testing.T) {
	for _, w := range []int{0, -1} {
		_, err := Column("\t\t", w)
		assert.ErrorIs(t, err, ErrInvalidTabWidth, "width %d", w)
	}
}

func TestLeadingWhitespace(t *testing.T) {
	assert.Equal(t, "", LeadingWhitespace(""))
	assert.Equal(t, "", LeadingWhitespace("abc"))
	assert.Equal(t, " \t ", LeadingWhitespace(" \t abc  "))
	assert.Equal(t, "\t\t", LeadingWhitespace("\t\t"))
}

func TestSplitLines(t *testing.T) {
	ls := SplitLines("a\r\n\tb\rc\n")
	assert.Equal(t, []Line{
		{Start: 0, Text: "a"},
		{Start: 3, Text: "\tb"},
		{Start: 6, Text: "c"},
		{Start: 8, Text: ""},
	}, ls)

	assert.Equal(t, []Line{{Start: 0, Text: ""}}, SplitLines(""))
}
