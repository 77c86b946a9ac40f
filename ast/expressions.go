package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/pyrite/token"
)

// Name is an identifier occurrence. Ctx distinguishes reads from writes;
// a Name in an assignment target position has Store context.
type Name struct {
	NamePos token.Position
	ID      string
	Ctx     ExprContext
}

func (x *Name) exprNode() {}

func (x *Name) Pos() token.Position { return x.NamePos }

func (x *Name) End() token.Position {
	pos := x.NamePos
	pos.Char += len(x.ID)
	pos.Column += len(x.ID)
	return pos
}

func (x *Name) String() string { return x.ID }

// Attribute is an attribute access expression, "x.attr".
type Attribute struct {
	X       Expr
	AttrPos token.Position
	Attr    string
}

func (x *Attribute) exprNode() {}

func (x *Attribute) Pos() token.Position { return x.X.Pos() }

func (x *Attribute) End() token.Position {
	pos := x.AttrPos
	pos.Char += len(x.Attr)
	pos.Column += len(x.Attr)
	return pos
}

func (x *Attribute) String() string { return x.X.String() + "." + x.Attr }

// Keyword is a keyword argument in a call, "name=value".
type Keyword struct {
	ArgPos token.Position
	Arg    string
	Value  Expr
}

func (k *Keyword) Pos() token.Position { return k.ArgPos }
func (k *Keyword) End() token.Position { return k.Value.End() }

func (k *Keyword) String() string { return k.Arg + "=" + k.Value.String() }

// Call is a function call expression.
type Call struct {
	Fun      Expr
	Args     []Expr
	Keywords []*Keyword
	Rparen   token.Position
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }

func (x *Call) End() token.Position {
	pos := x.Rparen
	pos.Char++
	pos.Column++
	return pos
}

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args)+len(x.Keywords))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	for _, k := range x.Keywords {
		args = append(args, k.String())
	}
	return x.Fun.String() + "(" + strings.Join(args, ", ") + ")"
}

// BinOp is a binary operator expression.
type BinOp struct {
	X  Expr
	Op string // "+", "-", "*", "/", "//", "%", "**"
	Y  Expr
}

func (x *BinOp) exprNode() {}

func (x *BinOp) Pos() token.Position { return x.X.Pos() }
func (x *BinOp) End() token.Position { return x.Y.End() }

func (x *BinOp) String() string {
	return x.X.String() + " " + x.Op + " " + x.Y.String()
}

// UnaryOp is a unary operator expression, e.g. "-x" or "not x".
type UnaryOp struct {
	OpPos token.Position
	Op    string // "-", "+", "not"
	X     Expr
}

func (x *UnaryOp) exprNode() {}

func (x *UnaryOp) Pos() token.Position { return x.OpPos }
func (x *UnaryOp) End() token.Position { return x.X.End() }

func (x *UnaryOp) String() string {
	if x.Op == "not" {
		return "not " + x.X.String()
	}
	return x.Op + x.X.String()
}

// Compare is a comparison chain, "a < b <= c". Ops[i] compares the result
// so far against Comparators[i].
type Compare struct {
	X           Expr
	Ops         []string
	Comparators []Expr
}

func (x *Compare) exprNode() {}

func (x *Compare) Pos() token.Position { return x.X.Pos() }
func (x *Compare) End() token.Position { return x.Comparators[len(x.Comparators)-1].End() }

func (x *Compare) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	for i, op := range x.Ops {
		out.WriteString(" " + op + " ")
		out.WriteString(x.Comparators[i].String())
	}
	return out.String()
}

// Tuple is a tuple expression. The parser produces Tuple nodes for
// comma-separated expression lists, including tuple assignment targets.
type Tuple struct {
	Elts []Expr
}

func (x *Tuple) exprNode() {}

func (x *Tuple) Pos() token.Position { return x.Elts[0].Pos() }
func (x *Tuple) End() token.Position { return x.Elts[len(x.Elts)-1].End() }

func (x *Tuple) String() string {
	parts := make([]string, 0, len(x.Elts))
	for _, e := range x.Elts {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

// List is a list literal expression.
type List struct {
	Lbrack token.Position
	Elts   []Expr
	Rbrack token.Position
}

func (x *List) exprNode() {}

func (x *List) Pos() token.Position { return x.Lbrack }

func (x *List) End() token.Position {
	pos := x.Rbrack
	pos.Char++
	pos.Column++
	return pos
}

func (x *List) String() string {
	parts := make([]string, 0, len(x.Elts))
	for _, e := range x.Elts {
		parts = append(parts, e.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
