package tmpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceholder(t *testing.T) {
	require.Equal(t, "{__pyrite_fstring_val_0__}", Placeholder(0))
	require.NotEqual(t, Placeholder(0), Placeholder(1))
}

func TestReplace(t *testing.T) {
	template := "f'a {__pyrite_fstring_val_0__} b {__pyrite_fstring_val_1__}'"
	out := Replace(template, []string{"x", "y + 1"})
	require.Equal(t, "f'a x b y + 1'", out)
}

func TestReplaceIsPositional(t *testing.T) {
	// A substituted value that itself looks like a placeholder must not
	// be re-matched by the next substitution.
	template := "f'{__pyrite_fstring_val_0__} {__pyrite_fstring_val_1__}'"
	out := Replace(template, []string{Placeholder(1), "real"})
	require.Equal(t, "f'"+Placeholder(1)+" real'", out)
}

func TestReplaceNoValues(t *testing.T) {
	require.Equal(t, "f'plain'", Replace("f'plain'", nil))
}
