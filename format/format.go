// Package format stores per-node formatting fragments out-of-band from
// the syntax tree. Entries are keyed by node identity: the store indexes
// nodes, it does not own them.
//
// A fragment is raw text recorded by the annotator during parsing and
// emitted verbatim by the printer. An absent fragment means "use default
// formatting". For fragments whose validity depends on node fields, the
// annotator also records a snapshot of each depended-on field under the
// key "<dep>__src"; the printer compares snapshots against live field
// values and discards stale fragments. The store itself performs no
// validation and never deletes entries.
package format

import "github.com/deepnoodle-ai/pyrite/ast"

// DepSuffix is appended to a dependency name to form its snapshot key.
const DepSuffix = "__src"

// Store holds formatting fragments and dependency snapshots per node.
type Store struct {
	text  map[ast.Node]map[string]string
	flags map[ast.Node]map[string]bool
}

// NewStore returns an empty formatting store.
func NewStore() *Store {
	return &Store{
		text:  map[ast.Node]map[string]string{},
		flags: map[ast.Node]map[string]bool{},
	}
}

// Get returns the text fragment stored for (node, attr). The second
// return value reports whether a fragment exists; an empty stored string
// is distinct from an absent one.
func (s *Store) Get(node ast.Node, attr string) (string, bool) {
	val, ok := s.text[node][attr]
	return val, ok
}

// Has reports whether a text fragment is stored for (node, attr).
func (s *Store) Has(node ast.Node, attr string) bool {
	_, ok := s.text[node][attr]
	return ok
}

// Set stores a text fragment for (node, attr), replacing any prior value.
func (s *Store) Set(node ast.Node, attr, value string) {
	m, ok := s.text[node]
	if !ok {
		m = map[string]string{}
		s.text[node] = m
	}
	m[attr] = value
}

// SetDep records the snapshot of a depended-on field of node under the
// "<dep>__src" key.
func (s *Store) SetDep(node ast.Node, dep, value string) {
	s.Set(node, dep+DepSuffix, value)
}

// Dep returns the recorded snapshot for a dependency of node.
func (s *Store) Dep(node ast.Node, dep string) (string, bool) {
	return s.Get(node, dep+DepSuffix)
}

// GetBool returns the boolean flag stored for (node, attr), or def when
// no flag is stored.
func (s *Store) GetBool(node ast.Node, attr string, def bool) bool {
	if val, ok := s.flags[node][attr]; ok {
		return val
	}
	return def
}

// SetBool stores a boolean flag for (node, attr).
func (s *Store) SetBool(node ast.Node, attr string, value bool) {
	m, ok := s.flags[node]
	if !ok {
		m = map[string]bool{}
		s.flags[node] = m
	}
	m[attr] = value
}

// NodeText returns a copy of all text fragments recorded for a node,
// dependency snapshots included.
func (s *Store) NodeText(node ast.Node) map[string]string {
	m, ok := s.text[node]
	if !ok {
		return nil
	}
	clone := make(map[string]string, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// CopyNode clones all fragments and flags recorded for src onto dst.
// Used when tree transformations deep-copy nodes, so copies print with
// the same formatting as their originals.
func (s *Store) CopyNode(dst, src ast.Node) {
	if m, ok := s.text[src]; ok {
		clone := make(map[string]string, len(m))
		for k, v := range m {
			clone[k] = v
		}
		s.text[dst] = clone
	}
	if m, ok := s.flags[src]; ok {
		clone := make(map[string]bool, len(m))
		for k, v := range m {
			clone[k] = v
		}
		s.flags[dst] = clone
	}
}
