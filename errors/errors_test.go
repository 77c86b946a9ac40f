package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBasic(t *testing.T) {
	f := NewFormatter(false)
	out := f.Format(&FormattedError{
		Kind:    "syntax error",
		Message: "expected an expression",
		Line:    3,
		Column:  5,
	})
	require.Contains(t, out, "syntax error: expected an expression")
	require.Contains(t, out, "--> 3:5")
}

func TestFormatWithSource(t *testing.T) {
	f := NewFormatter(false)
	out := f.Format(&FormattedError{
		Kind:     "syntax error",
		Message:  "unexpected indent",
		Filename: "app.py",
		Line:     7,
		Column:   3,
		SourceLines: []SourceLineEntry{
			{Number: 7, Text: "  x = 1", IsMain: true},
		},
	})
	require.Contains(t, out, "--> app.py:7:3")
	require.Contains(t, out, " 7 |   x = 1")
	require.Contains(t, out, "  ^")
}

func TestFormatHint(t *testing.T) {
	f := NewFormatter(false)
	out := f.Format(&FormattedError{
		Kind:    "inline error",
		Message: "widht is not defined",
		Hint:    "Did you mean 'width'?",
	})
	require.Contains(t, out, "hint: Did you mean 'width'?")
}

func TestSuggestSimilar(t *testing.T) {
	candidates := []string{"width", "height", "depth", "weight"}

	got := SuggestSimilar("widht", candidates)
	require.NotEmpty(t, got)
	require.Equal(t, "width", got[0].Value)
	require.Equal(t, 1, got[0].Distance)

	// Short targets use a tight threshold.
	require.Empty(t, SuggestSimilar("xy", candidates))

	// Exact matches are not suggestions.
	got = SuggestSimilar("width", candidates)
	for _, s := range got {
		require.NotEqual(t, "width", s.Value)
	}
}

func TestFormatSuggestions(t *testing.T) {
	require.Equal(t, "", FormatSuggestions(nil))
	require.Equal(t, "Did you mean 'width'?",
		FormatSuggestions([]Suggestion{{Value: "width", Distance: 1}}))
	require.Equal(t, "Did you mean one of: 'a', 'b'?",
		FormatSuggestions([]Suggestion{{Value: "a"}, {Value: "b"}}))
}

func TestEditDistance(t *testing.T) {
	require.Equal(t, 0, editDistance("same", "same"))
	require.Equal(t, 1, editDistance("cat", "cart"))
	require.Equal(t, 3, editDistance("", "abc"))

	// Swapped adjacent characters count as one edit.
	require.Equal(t, 1, editDistance("widht", "width"))
	require.Equal(t, 1, editDistance("recieve", "receive"))
}
