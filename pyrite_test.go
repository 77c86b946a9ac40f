package pyrite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/augment"
	"github.com/deepnoodle-ai/pyrite/parser"
)

func TestParseRenderIdentity(t *testing.T) {
	source := `# config
WIDTH = 80

def wrap(text, width=WIDTH):
    if width < 1:
        return text
    return fill(text, width)
`
	tree, err := Parse(context.Background(), source)
	require.NoError(t, err)
	out, err := tree.Render()
	require.NoError(t, err)
	require.Equal(t, source, out)
}

func TestInlineName(t *testing.T) {
	tree, err := Parse(context.Background(), "LIMIT = 100\ncheck(LIMIT)\n")
	require.NoError(t, err)
	require.NoError(t, tree.InlineName("LIMIT"))
	out, err := tree.Render()
	require.NoError(t, err)
	require.Equal(t, "check(100)\n", out)

	err = tree.InlineName("LIMIT")
	var ie *augment.InlineError
	require.ErrorAs(t, err, &ie)
}

func TestTransform(t *testing.T) {
	tree, err := Parse(context.Background(), "A = 1\nB = A\n")
	require.NoError(t, err)
	require.NoError(t, tree.Transform(augment.Inline("A")))
	out, err := tree.Render()
	require.NoError(t, err)
	require.Equal(t, "B = 1\n", out)
}

func TestParseError(t *testing.T) {
	_, err := Parse(context.Background(), "x = \n", parser.WithFilename("bad.py"))
	require.Error(t, err)
	var pe parser.ParserError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "bad.py", pe.File())
}

func TestDebugTree(t *testing.T) {
	tree, err := Parse(context.Background(), "x = 1\n")
	require.NoError(t, err)

	dump := tree.DebugTree(nil)
	require.Contains(t, dump, "Assign")
	require.Contains(t, dump, "suffix")

	assign := tree.Module.Stmts[0].(*ast.Assign)
	dump = tree.DebugTree(assign.Value)
	require.Contains(t, dump, "Num")
}
