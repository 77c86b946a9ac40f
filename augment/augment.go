// Package augment provides semantics-preserving tree transformations.
package augment

import (
	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/format"
)

// Transformer modifies an annotated tree in place. Transformers receive
// the tree together with its formatting store so edits can carry or
// invalidate formatting as appropriate.
type Transformer interface {
	Transform(mod *ast.Module, store *format.Store) error
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func(*ast.Module, *format.Store) error

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(mod *ast.Module, store *format.Store) error {
	return f(mod, store)
}

// Apply runs transformers in order, stopping at the first error. The
// tree may be partially transformed when an error is returned, but each
// individual transformer either completes or leaves the tree unchanged.
func Apply(mod *ast.Module, store *format.Store, transformers ...Transformer) error {
	for _, t := range transformers {
		if err := t.Transform(mod, store); err != nil {
			return err
		}
	}
	return nil
}
