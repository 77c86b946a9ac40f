// Package ast defines the annotated syntax tree for a Python-subset
// language. Nodes carry only grammatical structure; the formatting detail
// needed to reproduce source text byte-for-byte lives in a side store
// keyed by node identity (see the format package).
package ast

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/pyrite/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Stmt represents a statement node. Statements appear at module level or
// inside an indented block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// ExprContext records whether a name occurrence loads or stores a value.
type ExprContext int

const (
	// Load marks a name that is read.
	Load ExprContext = iota
	// Store marks a name that is assigned.
	Store
)

func (c ExprContext) String() string {
	if c == Store {
		return "store"
	}
	return "load"
}

// Module is the root node of a parsed source file.
type Module struct {
	Stmts []Stmt
}

func (m *Module) Pos() token.Position {
	if len(m.Stmts) > 0 {
		return m.Stmts[0].Pos()
	}
	return token.Position{}
}

func (m *Module) End() token.Position {
	if len(m.Stmts) > 0 {
		return m.Stmts[len(m.Stmts)-1].End()
	}
	return token.Position{}
}

func (m *Module) String() string {
	lines := make([]string, 0, len(m.Stmts))
	for _, stmt := range m.Stmts {
		lines = append(lines, stmt.String())
	}
	return strings.Join(lines, "\n")
}

// NodeKind returns a short name for the node's kind, used in diagnostics
// and error messages.
func NodeKind(n Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}
