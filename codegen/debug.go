package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/format"
)

// DebugNode is a serializable view of one tree node together with the
// formatting fragments recorded for it.
type DebugNode struct {
	Kind     string            `json:"kind"`
	Text     string            `json:"text,omitempty"`
	Format   map[string]string `json:"format,omitempty"`
	Children []*DebugNode      `json:"children,omitempty"`
}

// DebugTree converts a tree into its DebugNode view.
func DebugTree(root ast.Node, store *format.Store) *DebugNode {
	out := &DebugNode{
		Kind:   ast.NodeKind(root),
		Format: store.NodeText(root),
	}
	if _, isModule := root.(*ast.Module); !isModule {
		out.Text = root.String()
	}
	ast.Walk(&debugWalker{store: store, parent: out}, root)
	return out
}

type debugWalker struct {
	store  *format.Store
	parent *DebugNode
	seen   bool
}

func (w *debugWalker) Visit(node ast.Node) ast.Visitor {
	if !w.seen {
		// First call is the subtree root itself, already converted.
		w.seen = true
		return w
	}
	child := DebugTree(node, w.store)
	w.parent.Children = append(w.parent.Children, child)
	return nil
}

// RenderDebugTree formats a tree as an indented text dump of node kinds
// and their stored fragments, for troubleshooting round-trip issues.
func RenderDebugTree(root ast.Node, store *format.Store) string {
	var b strings.Builder
	renderDebugNode(&b, DebugTree(root, store), 0)
	return b.String()
}

func renderDebugNode(b *strings.Builder, node *DebugNode, depth int) {
	pad := strings.Repeat("  ", depth)
	b.WriteString(pad)
	b.WriteString(node.Kind)
	b.WriteString("\n")
	keys := make([]string, 0, len(node.Format))
	for k := range node.Format {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s  %s=%q\n", pad, k, node.Format[k])
	}
	for _, child := range node.Children {
		renderDebugNode(b, child, depth+1)
	}
}
