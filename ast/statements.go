package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/pyrite/token"
)

// Assign is a statement that binds one or more targets to a value.
// Chained assignments ("x = y = 1") have multiple targets; tuple
// assignments ("a, b = v") have a single Tuple target.
type Assign struct {
	Targets []Expr // assignment targets, in source order
	Value   Expr   // the assigned value
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Position { return s.Targets[0].Pos() }
func (s *Assign) End() token.Position { return s.Value.End() }

func (s *Assign) String() string {
	var out bytes.Buffer
	for _, target := range s.Targets {
		out.WriteString(target.String())
		out.WriteString(" = ")
	}
	out.WriteString(s.Value.String())
	return out.String()
}

// AugAssign is an augmented assignment statement, e.g. "x += 1".
type AugAssign struct {
	Target Expr
	Op     string // the operator without "=", e.g. "+", "//"
	Value  Expr
}

func (s *AugAssign) stmtNode() {}

func (s *AugAssign) Pos() token.Position { return s.Target.Pos() }
func (s *AugAssign) End() token.Position { return s.Value.End() }

func (s *AugAssign) String() string {
	return s.Target.String() + " " + s.Op + "= " + s.Value.String()
}

// ExprStmt is a statement consisting of a bare expression.
type ExprStmt struct {
	Value Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.Value.Pos() }
func (s *ExprStmt) End() token.Position { return s.Value.End() }

func (s *ExprStmt) String() string { return s.Value.String() }

// If is a conditional statement. An "elif" clause is represented as an
// Orelse containing a single nested If; the formatting store records
// whether that nested If was written as "elif" or as "else:" plus an
// indented "if".
type If struct {
	IfPos  token.Position // position of the "if" or "elif" keyword
	Test   Expr
	Body   []Stmt
	Orelse []Stmt // else branch; empty if absent
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.IfPos }

func (s *If) End() token.Position {
	if len(s.Orelse) > 0 {
		return s.Orelse[len(s.Orelse)-1].End()
	}
	return s.Body[len(s.Body)-1].End()
}

func (s *If) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(s.Test.String())
	out.WriteString(": ")
	out.WriteString(stmtsString(s.Body))
	if len(s.Orelse) > 0 {
		out.WriteString(" else: ")
		out.WriteString(stmtsString(s.Orelse))
	}
	return out.String()
}

// While is a loop statement with a test expression.
type While struct {
	WhilePos token.Position
	Test     Expr
	Body     []Stmt
}

func (s *While) stmtNode() {}

func (s *While) Pos() token.Position { return s.WhilePos }
func (s *While) End() token.Position { return s.Body[len(s.Body)-1].End() }

func (s *While) String() string {
	return "while " + s.Test.String() + ": " + stmtsString(s.Body)
}

// For is an iteration statement, "for target in iter:".
type For struct {
	ForPos token.Position
	Target Expr
	Iter   Expr
	Body   []Stmt
}

func (s *For) stmtNode() {}

func (s *For) Pos() token.Position { return s.ForPos }
func (s *For) End() token.Position { return s.Body[len(s.Body)-1].End() }

func (s *For) String() string {
	return "for " + s.Target.String() + " in " + s.Iter.String() + ": " + stmtsString(s.Body)
}

// Param is a single function parameter with an optional default value.
type Param struct {
	NamePos token.Position
	Name    string
	Default Expr // nil if the parameter has no default
}

func (p *Param) Pos() token.Position { return p.NamePos }

func (p *Param) End() token.Position {
	if p.Default != nil {
		return p.Default.End()
	}
	pos := p.NamePos
	pos.Char += len(p.Name)
	pos.Column += len(p.Name)
	return pos
}

func (p *Param) String() string {
	if p.Default != nil {
		return p.Name + "=" + p.Default.String()
	}
	return p.Name
}

// FunctionDef is a function definition statement.
type FunctionDef struct {
	DefPos token.Position
	Name   string
	Params []*Param
	Body   []Stmt
}

func (s *FunctionDef) stmtNode() {}

func (s *FunctionDef) Pos() token.Position { return s.DefPos }
func (s *FunctionDef) End() token.Position { return s.Body[len(s.Body)-1].End() }

func (s *FunctionDef) String() string {
	params := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, p.String())
	}
	return "def " + s.Name + "(" + strings.Join(params, ", ") + "): " + stmtsString(s.Body)
}

// ClassDef is a class definition statement.
type ClassDef struct {
	ClassPos token.Position
	Name     string
	Bases    []Expr
	Body     []Stmt
}

func (s *ClassDef) stmtNode() {}

func (s *ClassDef) Pos() token.Position { return s.ClassPos }
func (s *ClassDef) End() token.Position { return s.Body[len(s.Body)-1].End() }

func (s *ClassDef) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(s.Name)
	if len(s.Bases) > 0 {
		bases := make([]string, 0, len(s.Bases))
		for _, b := range s.Bases {
			bases = append(bases, b.String())
		}
		out.WriteString("(" + strings.Join(bases, ", ") + ")")
	}
	out.WriteString(": ")
	out.WriteString(stmtsString(s.Body))
	return out.String()
}

// Return is a return statement with an optional value.
type Return struct {
	ReturnPos token.Position
	Value     Expr // nil for a bare "return"
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.ReturnPos }

func (s *Return) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	pos := s.ReturnPos
	pos.Char += len("return")
	pos.Column += len("return")
	return pos
}

func (s *Return) String() string {
	if s.Value != nil {
		return "return " + s.Value.String()
	}
	return "return"
}

// Pass is the no-op statement.
type Pass struct {
	PassPos token.Position
}

func (s *Pass) stmtNode() {}

func (s *Pass) Pos() token.Position { return s.PassPos }
func (s *Pass) End() token.Position {
	pos := s.PassPos
	pos.Char += len("pass")
	pos.Column += len("pass")
	return pos
}
func (s *Pass) String() string { return "pass" }

// Break exits the innermost loop.
type Break struct {
	BreakPos token.Position
}

func (s *Break) stmtNode() {}

func (s *Break) Pos() token.Position { return s.BreakPos }
func (s *Break) End() token.Position {
	pos := s.BreakPos
	pos.Char += len("break")
	pos.Column += len("break")
	return pos
}
func (s *Break) String() string { return "break" }

// Continue advances the innermost loop.
type Continue struct {
	ContinuePos token.Position
}

func (s *Continue) stmtNode() {}

func (s *Continue) Pos() token.Position { return s.ContinuePos }
func (s *Continue) End() token.Position {
	pos := s.ContinuePos
	pos.Char += len("continue")
	pos.Column += len("continue")
	return pos
}
func (s *Continue) String() string { return "continue" }

func stmtsString(stmts []Stmt) string {
	parts := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		parts = append(parts, stmt.String())
	}
	return strings.Join(parts, "; ")
}
