package augment

import (
	"fmt"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/format"
	"github.com/deepnoodle-ai/pyrite/scope"
)

// InlineError indicates that a name is not eligible for inlining. The
// tree is left unmodified when one is returned.
type InlineError struct {
	message string
}

func (e *InlineError) Error() string {
	return e.message
}

func inlineErrorf(format string, args ...interface{}) *InlineError {
	return &InlineError{message: fmt.Sprintf(format, args...)}
}

// InlineName eliminates a module-level constant: every read of the name
// is replaced with an independent deep copy of its assigned value, and
// the assignment itself is removed. If the name is assigned through
// chained targets (x = y = 1), only the matching target is dropped.
//
// The name must be defined by a plain assignment directly at module
// level and never be written again; otherwise an *InlineError describes
// why it cannot be inlined and the tree is untouched. All validation
// happens before the first mutation.
func InlineName(mod *ast.Module, store *format.Store, name string) error {
	sc := scope.Analyze(mod)
	entry, ok := sc.Lookup(name)
	if !ok || entry.Definition == nil {
		return inlineErrorf("%s is not defined", name)
	}

	def, ok := entry.Definition.(*ast.Name)
	if !ok {
		return inlineErrorf("%s is not a constant; it has type %s",
			name, ast.NodeKind(entry.Definition))
	}

	assign, ok := sc.Parent(def).(*ast.Assign)
	if !ok {
		return inlineErrorf("%s is not declared in an assignment", name)
	}
	if _, ok := sc.Parent(assign).(*ast.Module); !ok {
		return inlineErrorf("%s is not a top-level name", name)
	}

	// A write anywhere else means the name is not constant.
	for _, ref := range entry.Refs {
		if ref.Write {
			return inlineErrorf("%s is not a constant", name)
		}
	}

	// Validation is complete; the rewrite below cannot fail.
	value := assign.Value
	for _, ref := range entry.Refs {
		clone := ast.CopyExpr(value, func(orig, copy ast.Node) {
			store.CopyNode(copy, orig)
		})
		ast.ReplaceChild(sc.Parent(ref.Node), ref.Node, clone)
	}

	if len(assign.Targets) == 1 {
		ast.RemoveChild(mod, assign)
		return nil
	}
	targets := make([]ast.Expr, 0, len(assign.Targets)-1)
	for _, target := range assign.Targets {
		if n, ok := target.(*ast.Name); ok && n.ID == name {
			continue
		}
		targets = append(targets, target)
	}
	assign.Targets = targets
	return nil
}

// Inline returns a Transformer that inlines the given name.
func Inline(name string) Transformer {
	return TransformerFunc(func(mod *ast.Module, store *format.Store) error {
		return InlineName(mod, store, name)
	})
}
