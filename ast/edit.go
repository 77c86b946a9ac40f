package ast

import "fmt"

// ReplaceChild replaces old with new in whichever field of parent holds
// it. The replacement must satisfy the field's type (statement fields take
// statements, expression fields take expressions). ReplaceChild panics if
// old is not a direct child of parent or if new has the wrong kind for the
// slot; callers are expected to have validated the edit.
func ReplaceChild(parent, old, new Node) {
	if replaceStmt(parent, old, new) || replaceExpr(parent, old, new) {
		return
	}
	panic(fmt.Sprintf("ast: %s is not a child of %s", NodeKind(old), NodeKind(parent)))
}

func asStmt(n Node) Stmt {
	s, ok := n.(Stmt)
	if !ok {
		panic(fmt.Sprintf("ast: cannot use %s in a statement slot", NodeKind(n)))
	}
	return s
}

func asExpr(n Node) Expr {
	e, ok := n.(Expr)
	if !ok {
		panic(fmt.Sprintf("ast: cannot use %s in an expression slot", NodeKind(n)))
	}
	return e
}

func replaceInStmts(stmts []Stmt, old, new Node) bool {
	for i, s := range stmts {
		if Node(s) == old {
			stmts[i] = asStmt(new)
			return true
		}
	}
	return false
}

func replaceInExprs(exprs []Expr, old, new Node) bool {
	for i, e := range exprs {
		if Node(e) == old {
			exprs[i] = asExpr(new)
			return true
		}
	}
	return false
}

func replaceStmt(parent, old, new Node) bool {
	switch p := parent.(type) {
	case *Module:
		return replaceInStmts(p.Stmts, old, new)
	case *If:
		return replaceInStmts(p.Body, old, new) || replaceInStmts(p.Orelse, old, new)
	case *While:
		return replaceInStmts(p.Body, old, new)
	case *For:
		return replaceInStmts(p.Body, old, new)
	case *FunctionDef:
		return replaceInStmts(p.Body, old, new)
	case *ClassDef:
		return replaceInStmts(p.Body, old, new)
	}
	return false
}

func replaceExpr(parent, old, new Node) bool {
	switch p := parent.(type) {
	case *Assign:
		if replaceInExprs(p.Targets, old, new) {
			return true
		}
		if Node(p.Value) == old {
			p.Value = asExpr(new)
			return true
		}
	case *AugAssign:
		if Node(p.Target) == old {
			p.Target = asExpr(new)
			return true
		}
		if Node(p.Value) == old {
			p.Value = asExpr(new)
			return true
		}
	case *ExprStmt:
		if Node(p.Value) == old {
			p.Value = asExpr(new)
			return true
		}
	case *If:
		if Node(p.Test) == old {
			p.Test = asExpr(new)
			return true
		}
	case *While:
		if Node(p.Test) == old {
			p.Test = asExpr(new)
			return true
		}
	case *For:
		if Node(p.Target) == old {
			p.Target = asExpr(new)
			return true
		}
		if Node(p.Iter) == old {
			p.Iter = asExpr(new)
			return true
		}
	case *Param:
		if Node(p.Default) == old {
			p.Default = asExpr(new)
			return true
		}
	case *ClassDef:
		return replaceInExprs(p.Bases, old, new)
	case *Return:
		if Node(p.Value) == old {
			p.Value = asExpr(new)
			return true
		}
	case *FString:
		return replaceInExprs(p.Parts, old, new)
	case *FormattedValue:
		if Node(p.Value) == old {
			p.Value = asExpr(new)
			return true
		}
	case *Attribute:
		if Node(p.X) == old {
			p.X = asExpr(new)
			return true
		}
	case *Call:
		if Node(p.Fun) == old {
			p.Fun = asExpr(new)
			return true
		}
		return replaceInExprs(p.Args, old, new)
	case *Keyword:
		if Node(p.Value) == old {
			p.Value = asExpr(new)
			return true
		}
	case *BinOp:
		if Node(p.X) == old {
			p.X = asExpr(new)
			return true
		}
		if Node(p.Y) == old {
			p.Y = asExpr(new)
			return true
		}
	case *UnaryOp:
		if Node(p.X) == old {
			p.X = asExpr(new)
			return true
		}
	case *Compare:
		if Node(p.X) == old {
			p.X = asExpr(new)
			return true
		}
		return replaceInExprs(p.Comparators, old, new)
	case *Tuple:
		return replaceInExprs(p.Elts, old, new)
	case *List:
		return replaceInExprs(p.Elts, old, new)
	}
	return false
}

// RemoveChild removes child from the list-valued field of parent that
// holds it. Only statement lists and expression lists support removal;
// RemoveChild panics if child occupies a required scalar slot.
func RemoveChild(parent, child Node) {
	switch p := parent.(type) {
	case *Module:
		if stmts, ok := removeFromStmts(p.Stmts, child); ok {
			p.Stmts = stmts
			return
		}
	case *If:
		if stmts, ok := removeFromStmts(p.Body, child); ok {
			p.Body = stmts
			return
		}
		if stmts, ok := removeFromStmts(p.Orelse, child); ok {
			p.Orelse = stmts
			return
		}
	case *While:
		if stmts, ok := removeFromStmts(p.Body, child); ok {
			p.Body = stmts
			return
		}
	case *For:
		if stmts, ok := removeFromStmts(p.Body, child); ok {
			p.Body = stmts
			return
		}
	case *FunctionDef:
		if stmts, ok := removeFromStmts(p.Body, child); ok {
			p.Body = stmts
			return
		}
	case *ClassDef:
		if stmts, ok := removeFromStmts(p.Body, child); ok {
			p.Body = stmts
			return
		}
		if exprs, ok := removeFromExprs(p.Bases, child); ok {
			p.Bases = exprs
			return
		}
	case *Tuple:
		if exprs, ok := removeFromExprs(p.Elts, child); ok {
			p.Elts = exprs
			return
		}
	case *List:
		if exprs, ok := removeFromExprs(p.Elts, child); ok {
			p.Elts = exprs
			return
		}
	case *Call:
		if exprs, ok := removeFromExprs(p.Args, child); ok {
			p.Args = exprs
			return
		}
	}
	panic(fmt.Sprintf("ast: cannot remove %s from %s", NodeKind(child), NodeKind(parent)))
}

func removeFromStmts(stmts []Stmt, child Node) ([]Stmt, bool) {
	for i, s := range stmts {
		if Node(s) == child {
			return append(stmts[:i:i], stmts[i+1:]...), true
		}
	}
	return nil, false
}

func removeFromExprs(exprs []Expr, child Node) ([]Expr, bool) {
	for i, e := range exprs {
		if Node(e) == child {
			return append(exprs[:i:i], exprs[i+1:]...), true
		}
	}
	return nil, false
}
