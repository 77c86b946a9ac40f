// Package pyrite parses source code into a syntax tree annotated with
// enough formatting detail to regenerate byte-identical output, lets the
// tree be mutated programmatically, and prints it back with original
// formatting preserved for everything untouched.
package pyrite

import (
	"context"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/augment"
	"github.com/deepnoodle-ai/pyrite/codegen"
	"github.com/deepnoodle-ai/pyrite/format"
	"github.com/deepnoodle-ai/pyrite/parser"
)

// Tree is an annotated syntax tree: the module together with the
// formatting store populated when it was parsed. The two always travel
// as a pair; rendering a module against the wrong store loses all
// original formatting.
type Tree struct {
	Module     *ast.Module
	Formatting *format.Store
}

// Parse source code into an annotated tree. Rendering the result
// without mutating it reproduces source exactly.
func Parse(ctx context.Context, source string, options ...parser.Option) (*Tree, error) {
	mod, store, err := parser.Parse(ctx, source, options...)
	if err != nil {
		return nil, err
	}
	return &Tree{Module: mod, Formatting: store}, nil
}

// Render regenerates source code for the tree.
func (t *Tree) Render() (string, error) {
	return codegen.Render(t.Module, t.Formatting)
}

// InlineName replaces every read of a module-level constant with its
// value and removes the defining assignment.
func (t *Tree) InlineName(name string) error {
	return augment.InlineName(t.Module, t.Formatting, name)
}

// Transform applies transformers to the tree in order.
func (t *Tree) Transform(transformers ...augment.Transformer) error {
	return augment.Apply(t.Module, t.Formatting, transformers...)
}

// DebugTree returns a diagnostic dump of a subtree with its stored
// formatting fragments. The module itself is dumped when node is nil.
func (t *Tree) DebugTree(node ast.Node) string {
	if node == nil {
		node = t.Module
	}
	return codegen.RenderDebugTree(node, t.Formatting)
}
