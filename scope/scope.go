// Package scope resolves names to their definitions and references.
//
// Analyze walks a module and builds a table mapping each name visible at
// module level to the node that defines it and to every other node that
// refers to it. Function and class bodies open nested scopes: a name
// assigned inside a function is local to it, while reads of names with
// no local binding resolve against the enclosing scopes up to the
// module. Default parameter values and base class lists are resolved in
// the scope enclosing the definition, matching when they are evaluated.
//
// The table is a snapshot. Mutating the tree invalidates it; recompute
// before running another name-based transformation.
package scope

import (
	"sort"

	"github.com/deepnoodle-ai/pyrite/ast"
)

// Reference is one occurrence of a name after its definition. Write is
// set for occurrences that rebind the name: assignment targets, loop
// targets, and redefinitions by def or class statements.
type Reference struct {
	Node  ast.Node
	Write bool
}

// NameEntry records everything known about one name in a scope: the
// node that first defines it and every later occurrence. References
// include writes, so a caller can tell a reassigned name from a
// constant without re-walking the tree.
type NameEntry struct {
	// Definition is the node that introduces the name: a Name in store
	// context for assignments, or the FunctionDef, ClassDef, or Param
	// node itself. Nil when the name is only ever read.
	Definition ast.Node

	// Refs holds every occurrence of the name after the defining one,
	// in traversal order.
	Refs []*Reference
}

// Scope is the result of analyzing a module: the module-level name
// table plus parent links for every node in the tree.
type Scope struct {
	entries map[string]*NameEntry
	parents *ast.ParentMap
}

// Lookup returns the module-level entry for a name.
func (s *Scope) Lookup(name string) (*NameEntry, bool) {
	e, ok := s.entries[name]
	return e, ok
}

// Names returns the module-level names in sorted order.
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.entries))
	for name := range s.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Parent returns the syntactic parent of a node, or nil for the root.
func (s *Scope) Parent(n ast.Node) ast.Node {
	return s.parents.Parent(n)
}

// Analyze builds the scope table for a module.
func Analyze(mod *ast.Module) *Scope {
	root := &frame{entries: map[string]*NameEntry{}}
	a := &analyzer{}
	a.walkBody(mod.Stmts, root)
	return &Scope{
		entries: root.entries,
		parents: ast.NewParentMap(mod),
	}
}

// frame is one lexical scope during analysis. The module frame has no
// parent and resolves every name not bound more locally.
type frame struct {
	entries map[string]*NameEntry
	locals  map[string]bool
	parent  *frame
}

func (f *frame) define(name string, node ast.Node) {
	e, ok := f.entries[name]
	if !ok {
		f.entries[name] = &NameEntry{Definition: node}
		return
	}
	if e.Definition == nil {
		e.Definition = node
		return
	}
	e.Refs = append(e.Refs, &Reference{Node: node, Write: true})
}

func (f *frame) reference(name string, node ast.Node) {
	target := f
	for target.parent != nil && !target.locals[name] {
		target = target.parent
	}
	e, ok := target.entries[name]
	if !ok {
		e = &NameEntry{}
		target.entries[name] = e
	}
	e.Refs = append(e.Refs, &Reference{Node: node})
}

type analyzer struct{}

func (a *analyzer) walkBody(body []ast.Stmt, f *frame) {
	for _, stmt := range body {
		a.walkStmt(stmt, f)
	}
}

func (a *analyzer) walkStmt(s ast.Stmt, f *frame) {
	switch node := s.(type) {
	case *ast.Assign:
		a.walkExpr(node.Value, f)
		for _, target := range node.Targets {
			a.walkExpr(target, f)
		}
	case *ast.AugAssign:
		a.walkExpr(node.Value, f)
		a.walkExpr(node.Target, f)
	case *ast.ExprStmt:
		a.walkExpr(node.Value, f)
	case *ast.If:
		a.walkExpr(node.Test, f)
		a.walkBody(node.Body, f)
		a.walkBody(node.Orelse, f)
	case *ast.While:
		a.walkExpr(node.Test, f)
		a.walkBody(node.Body, f)
	case *ast.For:
		a.walkExpr(node.Iter, f)
		a.walkExpr(node.Target, f)
		a.walkBody(node.Body, f)
	case *ast.FunctionDef:
		for _, param := range node.Params {
			if param.Default != nil {
				a.walkExpr(param.Default, f)
			}
		}
		f.define(node.Name, node)
		inner := &frame{
			entries: map[string]*NameEntry{},
			locals:  localBindings(node),
			parent:  f,
		}
		for _, param := range node.Params {
			inner.define(param.Name, param)
		}
		a.walkBody(node.Body, inner)
	case *ast.ClassDef:
		for _, base := range node.Bases {
			a.walkExpr(base, f)
		}
		f.define(node.Name, node)
		inner := &frame{
			entries: map[string]*NameEntry{},
			locals:  bodyBindings(node.Body),
			parent:  f,
		}
		a.walkBody(node.Body, inner)
	case *ast.Return:
		if node.Value != nil {
			a.walkExpr(node.Value, f)
		}
	case *ast.Pass, *ast.Break, *ast.Continue:
		// No names
	}
}

func (a *analyzer) walkExpr(e ast.Expr, f *frame) {
	if e == nil {
		return
	}
	if name, ok := e.(*ast.Name); ok {
		if name.Ctx == ast.Store {
			f.define(name.ID, name)
		} else {
			f.reference(name.ID, name)
		}
		return
	}
	ast.Inspect(e, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.Name:
			if node.Ctx == ast.Store {
				f.define(node.ID, node)
			} else {
				f.reference(node.ID, node)
			}
			return false
		case *ast.Attribute:
			// Only the object is a name reference; the attribute text
			// is not resolved in any scope.
			a.walkExpr(node.X, f)
			return false
		}
		return true
	})
}

// localBindings collects the names bound inside a function: its
// parameters plus everything bound by its body.
func localBindings(fn *ast.FunctionDef) map[string]bool {
	locals := bodyBindings(fn.Body)
	for _, param := range fn.Params {
		locals[param.Name] = true
	}
	return locals
}

// bodyBindings collects the names a statement list binds, without
// descending into nested function or class bodies.
func bodyBindings(body []ast.Stmt) map[string]bool {
	bound := map[string]bool{}
	var addTargets func(e ast.Expr)
	addTargets = func(e ast.Expr) {
		switch t := e.(type) {
		case *ast.Name:
			bound[t.ID] = true
		case *ast.Tuple:
			for _, elt := range t.Elts {
				addTargets(elt)
			}
		case *ast.List:
			for _, elt := range t.Elts {
				addTargets(elt)
			}
		}
	}
	var walk func(stmts []ast.Stmt)
	walk = func(stmts []ast.Stmt) {
		for _, s := range stmts {
			switch node := s.(type) {
			case *ast.Assign:
				for _, target := range node.Targets {
					addTargets(target)
				}
			case *ast.AugAssign:
				addTargets(node.Target)
			case *ast.For:
				addTargets(node.Target)
				walk(node.Body)
			case *ast.If:
				walk(node.Body)
				walk(node.Orelse)
			case *ast.While:
				walk(node.Body)
			case *ast.FunctionDef:
				bound[node.Name] = true
			case *ast.ClassDef:
				bound[node.Name] = true
			}
		}
	}
	walk(body)
	return bound
}
