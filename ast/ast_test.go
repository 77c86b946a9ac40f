package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleModule() (*Module, *Assign, *BinOp) {
	// total = count + 1
	binop := &BinOp{
		X:  &Name{ID: "count", Ctx: Load},
		Op: "+",
		Y:  &Num{Value: "1"},
	}
	assign := &Assign{
		Targets: []Expr{&Name{ID: "total", Ctx: Store}},
		Value:   binop,
	}
	return &Module{Stmts: []Stmt{assign}}, assign, binop
}

func TestInspect(t *testing.T) {
	mod, _, _ := sampleModule()
	var kinds []string
	Inspect(mod, func(n Node) bool {
		kinds = append(kinds, NodeKind(n))
		return true
	})
	require.Equal(t, []string{"Module", "Assign", "Name", "BinOp", "Name", "Num"}, kinds)
}

func TestInspectPrune(t *testing.T) {
	mod, _, _ := sampleModule()
	count := 0
	Inspect(mod, func(n Node) bool {
		count++
		_, isAssign := n.(*Assign)
		return !isAssign
	})
	require.Equal(t, 2, count)
}

func TestReplaceChild(t *testing.T) {
	_, _, binop := sampleModule()
	repl := &Num{Value: "42"}
	ReplaceChild(binop, binop.X, repl)
	require.Same(t, Node(repl), Node(binop.X))

	require.Panics(t, func() {
		ReplaceChild(binop, &Name{ID: "stranger"}, repl)
	})
}

func TestRemoveChild(t *testing.T) {
	mod, assign, _ := sampleModule()
	RemoveChild(mod, assign)
	require.Empty(t, mod.Stmts)

	require.Panics(t, func() {
		RemoveChild(assign, assign.Value)
	})
}

func TestCopyExpr(t *testing.T) {
	_, _, binop := sampleModule()
	pairs := map[Node]Node{}
	clone := CopyExpr(binop, func(orig, copy Node) {
		pairs[orig] = copy
	}).(*BinOp)

	require.NotSame(t, binop, clone)
	require.NotSame(t, binop.X, clone.X)
	require.Equal(t, "count", clone.X.(*Name).ID)
	require.Len(t, pairs, 3)
	require.Same(t, Node(clone.X), pairs[binop.X])

	clone.X.(*Name).ID = "other"
	require.Equal(t, "count", binop.X.(*Name).ID)
}

func TestCopyExprCall(t *testing.T) {
	call := &Call{
		Fun:  &Name{ID: "f", Ctx: Load},
		Args: []Expr{&Num{Value: "1"}},
		Keywords: []*Keyword{
			{Arg: "key", Value: &Str{Value: "v"}},
		},
	}
	clone := CopyExpr(call, nil).(*Call)
	require.NotSame(t, call.Keywords[0], clone.Keywords[0])
	clone.Keywords[0].Arg = "changed"
	require.Equal(t, "key", call.Keywords[0].Arg)
}

func TestParentMap(t *testing.T) {
	mod, assign, binop := sampleModule()
	parents := NewParentMap(mod)
	require.Same(t, Node(assign), parents.Parent(binop))
	require.Same(t, Node(binop), parents.Parent(binop.Y))
	require.Same(t, Node(mod), parents.Parent(assign))
	require.Nil(t, parents.Parent(mod))
}
