package augment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/codegen"
	"github.com/deepnoodle-ai/pyrite/format"
	"github.com/deepnoodle-ai/pyrite/parser"
)

func parse(t *testing.T, input string) (*ast.Module, *format.Store) {
	t.Helper()
	mod, store, err := parser.Parse(context.Background(), input)
	require.NoError(t, err)
	return mod, store
}

func render(t *testing.T, mod *ast.Module, store *format.Store) string {
	t.Helper()
	out, err := codegen.Render(mod, store)
	require.NoError(t, err)
	return out
}

func TestInlineSimple(t *testing.T) {
	mod, store := parse(t, "x = 1\na = x\n")
	require.NoError(t, InlineName(mod, store, "x"))
	require.Equal(t, "a = 1\n", render(t, mod, store))
}

func TestInlineMultipleUses(t *testing.T) {
	mod, store := parse(t, "x = 2\na = x\nb = x + x\n")
	require.NoError(t, InlineName(mod, store, "x"))
	require.Equal(t, "a = 2\nb = 2 + 2\n", render(t, mod, store))
}

func TestInlineChainedTarget(t *testing.T) {
	mod, store := parse(t, "x = y = z = 1\na = x + y\n")
	require.NoError(t, InlineName(mod, store, "y"))
	require.Equal(t, "x = z = 1\na = x + 1\n", render(t, mod, store))
}

func TestInlineIntoFunction(t *testing.T) {
	mod, store := parse(t, `CONSTANT = "foo"
def func(arg=CONSTANT):
    return arg == CONSTANT
`)
	require.NoError(t, InlineName(mod, store, "CONSTANT"))
	require.Equal(t, `def func(arg="foo"):
    return arg == "foo"
`, render(t, mod, store))
}

func TestInlineKeepsFormatting(t *testing.T) {
	mod, store := parse(t, "x = 1  # width\na = x  # use\nb  =  2\n")
	require.NoError(t, InlineName(mod, store, "x"))
	require.Equal(t, "a = 1  # use\nb  =  2\n", render(t, mod, store))
}

func TestInlineCopiesAreIndependent(t *testing.T) {
	mod, store := parse(t, "x = 1\na = x\nb = x\n")
	require.NoError(t, InlineName(mod, store, "x"))

	first := mod.Stmts[0].(*ast.Assign).Value.(*ast.Num)
	second := mod.Stmts[1].(*ast.Assign).Value.(*ast.Num)
	require.NotSame(t, first, second)

	first.Value = "99"
	require.Equal(t, "a = 99\nb = 1\n", render(t, mod, store))
}

func TestInlineErrors(t *testing.T) {
	tests := []struct {
		desc    string
		input   string
		name    string
		message string
	}{
		{
			desc:    "undefined name",
			input:   "a = 1\n",
			name:    "missing",
			message: "missing is not defined",
		},
		{
			desc:    "reassigned name",
			input:   "x = 1\nx = 2\na = x\n",
			name:    "x",
			message: "x is not a constant",
		},
		{
			desc:    "augmented assignment",
			input:   "x = 1\nx += 1\na = x\n",
			name:    "x",
			message: "x is not a constant",
		},
		{
			desc:    "function definition",
			input:   "def f():\n    pass\na = f\n",
			name:    "f",
			message: "f is not a constant; it has type FunctionDef",
		},
		{
			desc:    "tuple unpacking",
			input:   "a, b = values\nc = a\n",
			name:    "a",
			message: "a is not declared in an assignment",
		},
		{
			desc:    "conditional definition",
			input:   "if cond:\n    x = 1\nb = x\n",
			name:    "x",
			message: "x is not a top-level name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			mod, store := parse(t, tt.input)
			err := InlineName(mod, store, tt.name)
			require.Error(t, err)
			var ie *InlineError
			require.ErrorAs(t, err, &ie)
			require.Equal(t, tt.message, err.Error())

			// A failed inline leaves the tree untouched.
			require.Equal(t, tt.input, render(t, mod, store))
		})
	}
}

func TestApply(t *testing.T) {
	mod, store := parse(t, "a = 1\nb = 2\nc = a + b\n")
	err := Apply(mod, store, Inline("a"), Inline("b"))
	require.NoError(t, err)
	require.Equal(t, "c = 1 + 2\n", render(t, mod, store))

	err = Apply(mod, store, Inline("nope"))
	require.Error(t, err)
}
