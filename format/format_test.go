package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/pyrite/ast"
)

func TestGetSet(t *testing.T) {
	s := NewStore()
	n := &ast.Name{ID: "x"}

	_, ok := s.Get(n, "content")
	require.False(t, ok)
	require.False(t, s.Has(n, "content"))

	s.Set(n, "content", "x")
	val, ok := s.Get(n, "content")
	require.True(t, ok)
	require.Equal(t, "x", val)
	require.True(t, s.Has(n, "content"))

	// Empty values are stored, not treated as absent.
	s.Set(n, "prefix", "")
	val, ok = s.Get(n, "prefix")
	require.True(t, ok)
	require.Equal(t, "", val)
}

func TestNodeIdentity(t *testing.T) {
	// Two nodes with identical fields have separate entries.
	s := NewStore()
	a := &ast.Name{ID: "x"}
	b := &ast.Name{ID: "x"}
	s.Set(a, "content", "x")
	require.True(t, s.Has(a, "content"))
	require.False(t, s.Has(b, "content"))
}

func TestDeps(t *testing.T) {
	s := NewStore()
	n := &ast.Name{ID: "x"}
	s.Set(n, "content", "x")
	s.SetDep(n, "content", "x")

	snap, ok := s.Dep(n, "content")
	require.True(t, ok)
	require.Equal(t, "x", snap)

	// Snapshots live under the __src suffix in the same table.
	val, ok := s.Get(n, "content"+DepSuffix)
	require.True(t, ok)
	require.Equal(t, "x", val)
}

func TestBoolFlags(t *testing.T) {
	s := NewStore()
	n := &ast.If{}
	require.False(t, s.GetBool(n, "is_elif", false))
	require.True(t, s.GetBool(n, "is_elif", true))

	s.SetBool(n, "is_elif", true)
	require.True(t, s.GetBool(n, "is_elif", false))

	s.SetBool(n, "is_elif", false)
	require.False(t, s.GetBool(n, "is_elif", true))
}

func TestCopyNode(t *testing.T) {
	s := NewStore()
	src := &ast.Num{Value: "1"}
	s.Set(src, "content", "0x1")
	s.SetDep(src, "content", "1")
	s.SetBool(src, "flagged", true)

	dst := &ast.Num{Value: "1"}
	s.CopyNode(dst, src)

	val, ok := s.Get(dst, "content")
	require.True(t, ok)
	require.Equal(t, "0x1", val)
	snap, ok := s.Dep(dst, "content")
	require.True(t, ok)
	require.Equal(t, "1", snap)
	require.True(t, s.GetBool(dst, "flagged", false))

	// The copy is independent of the source.
	s.Set(dst, "content", "1")
	val, _ = s.Get(src, "content")
	require.Equal(t, "0x1", val)
}

func TestNodeText(t *testing.T) {
	s := NewStore()
	n := &ast.Name{ID: "x"}
	require.Nil(t, s.NodeText(n))

	s.Set(n, "content", "x")
	s.SetDep(n, "content", "x")
	m := s.NodeText(n)
	require.Len(t, m, 2)
	require.Equal(t, "x", m["content"])

	// Mutating the returned map does not touch the store.
	m["content"] = "y"
	val, _ := s.Get(n, "content")
	require.Equal(t, "x", val)
}
