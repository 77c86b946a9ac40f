package codegen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/pyrite/ast"
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
	out, err := Render(mod, store)
	require.NoError(t, err)
	return out
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"x = 1\n",
		"x=1\n",
		"x   =   1\n",
		"x = 1  # note\n\n\ny = 2\n",
		"# leading comment\nx = 1\n",
		"x = 1\n# trailing comment\n",
		"\ufeffx = 1\n",
		"x = y = z = 1\n",
		"a, b = b, a\n",
		"t = (1, 2,)\n",
		"l = [1, 2, 3]\n",
		"l = [\n    1,\n    2,\n]\n",
		"x = a \\\n    + b\n",
		"x = ( a )\n",
		"x = -y ** 2\n",
		"ok = a < b <= c\n",
		"v = not done\n",
		"s = 'single'\n",
		"s = \"double\"\n",
		"s = '''multi\nline'''\n",
		"r = r'\\d+'\n",
		"u = u'typed'\n",
		"b = b'abc'\n",
		"m = f'count: {n}!'\n",
		"m = f'{{literal}} {a.b}'\n",
		"a.b.c(1, key=2)\n",
		"f( 1 , 2 )\n",
		"if a:\n    x = 1\nelif b:\n    y = 2\nelse:\n    z = 3\n",
		"if a:\n\tif b:\n\t\tpass\n",
		"while x < 10:\n    x += 1\n    if x == 5:\n        break\n",
		"for i in range(3):\n    print(i)\nelse_done = True\n",
		"def f(a, b=2):\n\treturn a + b\n",
		"def f(\n    a,\n    b,\n):\n    pass\n",
		"class C(Base, object):\n    def m(self):\n        return None\n",
		"def loop():\n    for x in xs:\n        continue\n",
		"x = 1",
	}
	for _, input := range tests {
		mod, store := parse(t, input)
		require.Equal(t, input, render(t, mod, store), "input: %q", input)
	}
}

func TestUnrelatedEditStability(t *testing.T) {
	mod, store := parse(t, "x = 1  # first\ny  =  2   # second\n")
	assign := mod.Stmts[0].(*ast.Assign)
	assign.Value.(*ast.Num).Value = "42"
	out := render(t, mod, store)
	require.Equal(t, "x = 42  # first\ny  =  2   # second\n", out)
}

func TestDependencyInvalidation(t *testing.T) {
	mod, store := parse(t, "total = total + 1\n")
	assign := mod.Stmts[0].(*ast.Assign)
	binop := assign.Value.(*ast.BinOp)
	binop.X.(*ast.Name).ID = "count"
	out := render(t, mod, store)
	require.Equal(t, "total = count + 1\n", out)
}

func TestStaleOperatorFragment(t *testing.T) {
	mod, store := parse(t, "r = a+b\n")
	binop := mod.Stmts[0].(*ast.Assign).Value.(*ast.BinOp)
	binop.Op = "-"
	out := render(t, mod, store)
	require.Equal(t, "r = a - b\n", out)
}

func TestStaleStringKeepsKindPrefix(t *testing.T) {
	mod, store := parse(t, "s = u'old'\n")
	str := mod.Stmts[0].(*ast.Assign).Value.(*ast.Str)
	str.Value = "new"
	out := render(t, mod, store)
	require.Equal(t, "s = u'new'\n", out)
}

func TestStaleStringKeepsQuoteStyle(t *testing.T) {
	tests := []struct {
		input    string
		newValue string
		want     string
	}{
		{"p = r'\\d+'\n", `\w+`, "p = r'\\w+'\n"},
		{"s = 'old'\n", "new", "s = 'new'\n"},
		{"s = \"old\"\n", "it's", "s = \"it's\"\n"},
		{"s = '''old'''\n", "line1\nline2", "s = '''line1\nline2'''\n"},
		{"b = b'old'\n", "new", "b = b'new'\n"},
		// A raw style cannot spell a trailing backslash; the value
		// falls back to a plain quoted literal.
		{"p = r'\\d+'\n", `\d\`, "p = \"\\\\d\\\\\"\n"},
	}
	for _, tt := range tests {
		mod, store := parse(t, tt.input)
		switch node := mod.Stmts[0].(*ast.Assign).Value.(type) {
		case *ast.Str:
			node.Value = tt.newValue
		case *ast.Bytes:
			node.Value = tt.newValue
		}
		out := render(t, mod, store)
		require.Equal(t, tt.want, out, "input %q", tt.input)
	}
}

func TestFStringInnerEdit(t *testing.T) {
	mod, store := parse(t, "m = f'hello {name}!'\n")
	fs := mod.Stmts[0].(*ast.Assign).Value.(*ast.FString)
	var fv *ast.FormattedValue
	for _, part := range fs.Parts {
		if v, ok := part.(*ast.FormattedValue); ok {
			fv = v
		}
	}
	require.NotNil(t, fv)
	fv.Value.(*ast.Name).ID = "title"
	out := render(t, mod, store)
	require.Equal(t, "m = f'hello {title}!'\n", out)
}

func TestSynthesizedStatement(t *testing.T) {
	mod, store := parse(t, "a = 1\n")
	stmt := &ast.Assign{
		Targets: []ast.Expr{&ast.Name{ID: "b", Ctx: ast.Store}},
		Value:   &ast.Num{Value: "2"},
	}
	mod.Stmts = append(mod.Stmts, stmt)
	out := render(t, mod, store)
	require.Equal(t, "a = 1\nb = 2\n", out)
}

func TestSynthesizedBlock(t *testing.T) {
	store := format.NewStore()
	mod := &ast.Module{Stmts: []ast.Stmt{
		&ast.If{
			Test: &ast.Name{ID: "cond", Ctx: ast.Load},
			Body: []ast.Stmt{
				&ast.Return{Value: &ast.Name{ID: "x", Ctx: ast.Load}},
			},
		},
	}}
	out := render(t, mod, store)
	require.Equal(t, "if cond:\n    return x\n", out)
}

func TestSynthesizedBlockMatchesFileIndent(t *testing.T) {
	mod, store := parse(t, "if a:\n  x = 1\n")
	stmt := mod.Stmts[0].(*ast.If)
	stmt.Orelse = []ast.Stmt{
		&ast.ExprStmt{Value: &ast.Call{
			Fun: &ast.Name{ID: "handle", Ctx: ast.Load},
		}},
	}
	out := render(t, mod, store)
	require.Equal(t, "if a:\n  x = 1\nelse:\n  handle()\n", out)
}

func TestInferDefaultIndent(t *testing.T) {
	mod, store := parse(t, `if a:
  x = 1
  y = 2
if b:
    z = 3
`)
	require.Equal(t, "  ", inferDefaultIndent(mod, store))

	// A tie is broken toward the shorter indent text, deterministically.
	mod, store = parse(t, "if a:\n  x = 1\nif b:\n    y = 2\n")
	for i := 0; i < 10; i++ {
		require.Equal(t, "  ", inferDefaultIndent(mod, store))
	}

	mod, store = parse(t, "x = 1\n")
	require.Equal(t, "    ", inferDefaultIndent(mod, store))
}

func TestPrintErrorOnBadTree(t *testing.T) {
	store := format.NewStore()
	mod := &ast.Module{Stmts: []ast.Stmt{
		&ast.Assign{
			Targets: []ast.Expr{&ast.Name{ID: "x", Ctx: ast.Store}},
		},
	}}
	_, err := Render(mod, store)
	require.Error(t, err)
	var pe *PrintError
	require.ErrorAs(t, err, &pe)
}

func TestTokenSeparation(t *testing.T) {
	store := format.NewStore()
	mod := &ast.Module{Stmts: []ast.Stmt{
		&ast.Return{Value: &ast.Name{ID: "x", Ctx: ast.Load}},
	}}
	out := render(t, mod, store)
	require.Equal(t, "return x\n", out)
}
