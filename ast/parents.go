package ast

// ParentMap is a non-owning index from each node in a tree to its parent.
// The tree itself remains the single owner of its nodes; the map only
// records the containment relationship observed at construction time and
// must be rebuilt after structural edits.
type ParentMap struct {
	parents map[Node]Node
}

// NewParentMap builds a parent index for the tree rooted at root.
func NewParentMap(root Node) *ParentMap {
	pm := &ParentMap{parents: map[Node]Node{}}
	var visit func(Node)
	visit = func(n Node) {
		for _, child := range children(n) {
			pm.parents[child] = n
			visit(child)
		}
	}
	visit(root)
	return pm
}

// Parent returns the parent of n, or nil if n is the root or is not part
// of the indexed tree.
func (pm *ParentMap) Parent(n Node) Node {
	return pm.parents[n]
}
