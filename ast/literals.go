package ast

import (
	"bytes"
	"fmt"

	"github.com/deepnoodle-ai/pyrite/token"
)

// Num is a numeric literal. Value holds the canonical literal text; the
// exact text written in the source (e.g. "0x2A" vs "42") lives in the
// formatting store.
type Num struct {
	ValuePos token.Position
	Value    string
}

func (x *Num) exprNode() {}

func (x *Num) Pos() token.Position { return x.ValuePos }

func (x *Num) End() token.Position {
	pos := x.ValuePos
	pos.Char += len(x.Value)
	pos.Column += len(x.Value)
	return pos
}

func (x *Num) String() string { return x.Value }

// Str is a string literal. Value is the unquoted, unescaped string value.
// Kind carries a cross-version type prefix ("u") present on typed trees
// produced by older front ends; it is empty for ordinary literals.
type Str struct {
	ValuePos token.Position
	Value    string
	Kind     string
}

func (x *Str) exprNode() {}

func (x *Str) Pos() token.Position { return x.ValuePos }
func (x *Str) End() token.Position { return x.ValuePos }

func (x *Str) String() string { return fmt.Sprintf("%q", x.Value) }

// Bytes is a bytes literal, e.g. b'abc'. Value is the unquoted body.
type Bytes struct {
	ValuePos token.Position
	Value    string
}

func (x *Bytes) exprNode() {}

func (x *Bytes) Pos() token.Position { return x.ValuePos }
func (x *Bytes) End() token.Position { return x.ValuePos }

func (x *Bytes) String() string { return fmt.Sprintf("b%q", x.Value) }

// Constant is a named constant literal: True, False, None, or Ellipsis
// ("..."). Value is the canonical spelling.
type Constant struct {
	ValuePos token.Position
	Value    string
}

func (x *Constant) exprNode() {}

func (x *Constant) Pos() token.Position { return x.ValuePos }

func (x *Constant) End() token.Position {
	pos := x.ValuePos
	pos.Char += len(x.Value)
	pos.Column += len(x.Value)
	return pos
}

func (x *Constant) String() string { return x.Value }

// FormattedValue is one "{expr}" interpolation inside an f-string.
type FormattedValue struct {
	Value Expr
}

func (x *FormattedValue) exprNode() {}

func (x *FormattedValue) Pos() token.Position { return x.Value.Pos() }
func (x *FormattedValue) End() token.Position { return x.Value.End() }

func (x *FormattedValue) String() string { return "{" + x.Value.String() + "}" }

// FString is an interpolated string literal. Parts alternates between
// *Str literal segments and *FormattedValue interpolations, in source
// order; either may be absent.
type FString struct {
	ValuePos token.Position
	Parts    []Expr
}

func (x *FString) exprNode() {}

func (x *FString) Pos() token.Position { return x.ValuePos }
func (x *FString) End() token.Position { return x.ValuePos }

func (x *FString) String() string {
	var out bytes.Buffer
	out.WriteString("f\"")
	for _, part := range x.Parts {
		switch p := part.(type) {
		case *Str:
			out.WriteString(p.Value)
		default:
			out.WriteString(part.String())
		}
	}
	out.WriteString("\"")
	return out.String()
}
