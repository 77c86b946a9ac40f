package ast

import (
	"fmt"
	"iter"
)

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// children returns the direct children of a node in source order. It is
// the single enumeration of the closed node set used by Walk, Preorder,
// and ParentMap; an unknown node kind is a hard error.
func children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}

	switch n := node.(type) {
	case *Module:
		for _, stmt := range n.Stmts {
			add(stmt)
		}

	// Statements
	case *Assign:
		for _, target := range n.Targets {
			addExpr(target)
		}
		addExpr(n.Value)
	case *AugAssign:
		addExpr(n.Target)
		addExpr(n.Value)
	case *ExprStmt:
		addExpr(n.Value)
	case *If:
		addExpr(n.Test)
		for _, stmt := range n.Body {
			add(stmt)
		}
		for _, stmt := range n.Orelse {
			add(stmt)
		}
	case *While:
		addExpr(n.Test)
		for _, stmt := range n.Body {
			add(stmt)
		}
	case *For:
		addExpr(n.Target)
		addExpr(n.Iter)
		for _, stmt := range n.Body {
			add(stmt)
		}
	case *FunctionDef:
		for _, p := range n.Params {
			add(p)
		}
		for _, stmt := range n.Body {
			add(stmt)
		}
	case *Param:
		addExpr(n.Default)
	case *ClassDef:
		for _, base := range n.Bases {
			addExpr(base)
		}
		for _, stmt := range n.Body {
			add(stmt)
		}
	case *Return:
		addExpr(n.Value)
	case *Pass, *Break, *Continue:
		// No children

	// Expressions
	case *Name, *Num, *Str, *Bytes, *Constant:
		// No children
	case *FString:
		for _, part := range n.Parts {
			addExpr(part)
		}
	case *FormattedValue:
		addExpr(n.Value)
	case *Attribute:
		addExpr(n.X)
	case *Call:
		addExpr(n.Fun)
		for _, arg := range n.Args {
			addExpr(arg)
		}
		for _, kw := range n.Keywords {
			add(kw)
		}
	case *Keyword:
		addExpr(n.Value)
	case *BinOp:
		addExpr(n.X)
		addExpr(n.Y)
	case *UnaryOp:
		addExpr(n.X)
	case *Compare:
		addExpr(n.X)
		for _, c := range n.Comparators {
			addExpr(c)
		}
	case *Tuple:
		for _, e := range n.Elts {
			addExpr(e)
		}
	case *List:
		for _, e := range n.Elts {
			addExpr(e)
		}

	default:
		panic(fmt.Sprintf("ast: unhandled node kind %T", node))
	}
	return out
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range children(node) {
		Walk(v, child)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}
