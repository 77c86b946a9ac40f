package scope

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/parser"
)

func analyze(t *testing.T, input string) (*Scope, *ast.Module) {
	t.Helper()
	mod, _, err := parser.Parse(context.Background(), input)
	require.NoError(t, err)
	return Analyze(mod), mod
}

func TestModuleEntries(t *testing.T) {
	sc, _ := analyze(t, "x = 1\ny = x + 1\n")
	require.Equal(t, []string{"x", "y"}, sc.Names())

	x, ok := sc.Lookup("x")
	require.True(t, ok)
	require.NotNil(t, x.Definition)
	def, ok := x.Definition.(*ast.Name)
	require.True(t, ok)
	require.Equal(t, ast.Store, def.Ctx)
	require.Len(t, x.Refs, 1)
	require.False(t, x.Refs[0].Write)
}

func TestReassignmentIsWrite(t *testing.T) {
	sc, _ := analyze(t, "x = 1\nx = 2\na = x\n")
	x, ok := sc.Lookup("x")
	require.True(t, ok)
	require.Len(t, x.Refs, 2)
	require.True(t, x.Refs[0].Write)
	require.False(t, x.Refs[1].Write)
}

func TestAugAssignIsWrite(t *testing.T) {
	sc, _ := analyze(t, "x = 1\nx += 1\n")
	x, _ := sc.Lookup("x")
	require.Len(t, x.Refs, 1)
	require.True(t, x.Refs[0].Write)
}

func TestReadBeforeDefinition(t *testing.T) {
	sc, _ := analyze(t, "print(value)\n")
	v, ok := sc.Lookup("value")
	require.True(t, ok)
	require.Nil(t, v.Definition)
	require.Len(t, v.Refs, 1)
}

func TestFunctionLocalsStayLocal(t *testing.T) {
	sc, _ := analyze(t, `x = 1
def f():
    x = 2
    return x
`)
	x, _ := sc.Lookup("x")
	require.Empty(t, x.Refs, "the local x should not touch the module entry")

	f, ok := sc.Lookup("f")
	require.True(t, ok)
	_, isDef := f.Definition.(*ast.FunctionDef)
	require.True(t, isDef)
}

func TestFunctionReadsModuleName(t *testing.T) {
	sc, _ := analyze(t, `limit = 10
def check(n):
    return n < limit
`)
	limit, _ := sc.Lookup("limit")
	require.Len(t, limit.Refs, 1)
	require.False(t, limit.Refs[0].Write)

	// Parameters never leak into the module scope.
	_, ok := sc.Lookup("n")
	require.False(t, ok)
}

func TestDefaultsResolveInEnclosingScope(t *testing.T) {
	sc, _ := analyze(t, `SIZE = 4
def pad(width=SIZE):
    return width
`)
	size, _ := sc.Lookup("SIZE")
	require.Len(t, size.Refs, 1)
	ref, ok := size.Refs[0].Node.(*ast.Name)
	require.True(t, ok)
	require.Equal(t, "SIZE", ref.ID)
}

func TestClassBasesResolveOutside(t *testing.T) {
	sc, _ := analyze(t, `Base = object
class C(Base):
    Base = 1
`)
	base, _ := sc.Lookup("Base")
	require.Len(t, base.Refs, 1)
	require.False(t, base.Refs[0].Write)
}

func TestRedefinitionByDef(t *testing.T) {
	sc, _ := analyze(t, "x = 1\ndef x():\n    pass\n")
	x, _ := sc.Lookup("x")
	require.Len(t, x.Refs, 1)
	require.True(t, x.Refs[0].Write)
}

func TestForTargetIsWrite(t *testing.T) {
	sc, _ := analyze(t, "i = 0\nfor i in items:\n    pass\n")
	i, _ := sc.Lookup("i")
	require.Len(t, i.Refs, 1)
	require.True(t, i.Refs[0].Write)
}

func TestAttributeObjectOnly(t *testing.T) {
	sc, _ := analyze(t, "obj.field = 1\nv = obj.field\n")
	_, ok := sc.Lookup("field")
	require.False(t, ok)
	obj, ok := sc.Lookup("obj")
	require.True(t, ok)
	require.Nil(t, obj.Definition)
	require.Len(t, obj.Refs, 2)
}

func TestParentLinks(t *testing.T) {
	sc, mod := analyze(t, "a = x\n")
	assign := mod.Stmts[0].(*ast.Assign)
	x, _ := sc.Lookup("x")
	require.Same(t, ast.Node(assign), sc.Parent(x.Refs[0].Node))
	require.Same(t, ast.Node(mod), sc.Parent(assign))
}
