// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertConsistent checks the structural invariants of the scene:
// every child link has a matching parent link, every root is parentless,
// and every arena node is reachable from the roots.
func assertConsistent(t *testing.T, sc *Scene) {
	t.Helper()
	seen := 0
	sc.WalkDown(func(n *Node) bool {
		seen++
		for _, cid := range n.Children {
			cn := sc.Node(cid)
			if assert.NotNil(t, cn, "child %d of %d", cid, n.ID) {
				assert.Equal(t, n.ID, cn.Parent)
			}
		}
		return Continue
	})
	assert.Equal(t, sc.NumNodes(), seen, "all nodes reachable from roots")
	for _, rid := range sc.Roots {
		rn := sc.Node(rid)
		if assert.NotNil(t, rn) {
			assert.Equal(t, NodeID(0), rn.Parent)
		}
	}
}

func mustAdd(t *testing.T, sc *Scene, n *Node, parent NodeID, index int) *Node {
	t.Helper()
	require.NoError(t, sc.Add(n, parent, index))
	return n
}

func TestAdd(t *testing.T) {
	sc := NewScene()
	r1 := mustAdd(t, sc, &Node{Kind: Rect, Size: math32.Vec2(10, 10)}, 0, -1)
	r2 := mustAdd(t, sc, &Node{Kind: Rect, Name: "two"}, 0, -1)

	assert.Equal(t, NodeID(1), r1.ID)
	assert.Equal(t, NodeID(2), r2.ID)
	assert.Equal(t, "rect-1", r1.Name)
	assert.Equal(t, "two", r2.Name)
	assert.Equal(t, []NodeID{r1.ID, r2.ID}, sc.Roots)
	assert.Equal(t, 2, sc.NumNodes())

	// insertion between existing siblings
	r3 := mustAdd(t, sc, &Node{Kind: Rect}, 0, 1)
	assert.Equal(t, []NodeID{r1.ID, r3.ID, r2.ID}, sc.Roots)

	g := mustAdd(t, sc, &Node{Kind: Group, Name: "g"}, 0, -1)
	c := mustAdd(t, sc, &Node{Kind: Text, Text: "hi"}, g.ID, -1)
	assert.Equal(t, g.ID, c.Parent)
	assert.Equal(t, []NodeID{c.ID}, g.Children)
	assertConsistent(t, sc)
}

func TestAddErrors(t *testing.T) {
	sc := NewScene()
	r := mustAdd(t, sc, &Node{Kind: Rect}, 0, -1)

	err := sc.Add(&Node{Kind: Rect}, 99, -1)
	assert.ErrorIs(t, err, ErrParentNotFound)

	err = sc.Add(&Node{Kind: Rect}, r.ID, -1)
	assert.ErrorIs(t, err, ErrParentNotGroup)

	err = sc.Add(&Node{Kind: Rect, ID: r.ID}, 0, -1)
	assert.Error(t, err)

	assert.Equal(t, 1, sc.NumNodes())
	assertConsistent(t, sc)
}

func TestRemove(t *testing.T) {
	sc := NewScene()
	g := mustAdd(t, sc, &Node{Kind: Group}, 0, -1)
	c1 := mustAdd(t, sc, &Node{Kind: Rect}, g.ID, -1)
	g2 := mustAdd(t, sc, &Node{Kind: Group}, g.ID, -1)
	c2 := mustAdd(t, sc, &Node{Kind: Rect}, g2.ID, -1)
	other := mustAdd(t, sc, &Node{Kind: Rect}, 0, -1)
	assert.Equal(t, 5, sc.NumNodes())

	// removing a group cascades through its whole subtree
	require.NoError(t, sc.Remove(g.ID))
	assert.Equal(t, 1, sc.NumNodes())
	assert.False(t, sc.Has(g.ID))
	assert.False(t, sc.Has(c1.ID))
	assert.False(t, sc.Has(g2.ID))
	assert.False(t, sc.Has(c2.ID))
	assert.True(t, sc.Has(other.ID))
	assert.Equal(t, []NodeID{other.ID}, sc.Roots)

	assert.ErrorIs(t, sc.Remove(g.ID), ErrNodeNotFound)
	assertConsistent(t, sc)
}

func TestReparent(t *testing.T) {
	sc := NewScene()
	ga := mustAdd(t, sc, &Node{Kind: Group, Name: "a"}, 0, -1)
	gb := mustAdd(t, sc, &Node{Kind: Group, Name: "b"}, 0, -1)
	r := mustAdd(t, sc, &Node{Kind: Rect}, ga.ID, -1)

	require.NoError(t, sc.Reparent(r.ID, gb.ID, -1))
	assert.Empty(t, ga.Children)
	assert.Equal(t, []NodeID{r.ID}, gb.Children)
	assert.Equal(t, gb.ID, r.Parent)

	// to root level at a specific index
	require.NoError(t, sc.Reparent(r.ID, 0, 0))
	assert.Equal(t, []NodeID{r.ID, ga.ID, gb.ID}, sc.Roots)
	assert.Equal(t, NodeID(0), r.Parent)
	assertConsistent(t, sc)
}

func TestReparentErrors(t *testing.T) {
	sc := NewScene()
	ga := mustAdd(t, sc, &Node{Kind: Group}, 0, -1)
	gb := mustAdd(t, sc, &Node{Kind: Group}, ga.ID, -1)
	r := mustAdd(t, sc, &Node{Kind: Rect}, 0, -1)

	assert.ErrorIs(t, sc.Reparent(99, ga.ID, -1), ErrNodeNotFound)
	assert.ErrorIs(t, sc.Reparent(r.ID, 99, -1), ErrParentNotFound)
	assert.ErrorIs(t, sc.Reparent(r.ID, r.ID, -1), ErrParentNotGroup)

	// a group cannot move under itself or its own descendant
	assert.ErrorIs(t, sc.Reparent(ga.ID, ga.ID, -1), ErrCycleDetected)
	assert.ErrorIs(t, sc.Reparent(ga.ID, gb.ID, -1), ErrCycleDetected)
	assertConsistent(t, sc)
}

func TestRestack(t *testing.T) {
	sc := NewScene()
	a := mustAdd(t, sc, &Node{Kind: Rect}, 0, -1)
	b := mustAdd(t, sc, &Node{Kind: Rect}, 0, -1)
	c := mustAdd(t, sc, &Node{Kind: Rect}, 0, -1)

	require.NoError(t, sc.Restack(a.ID, 2))
	assert.Equal(t, []NodeID{b.ID, c.ID, a.ID}, sc.Roots)
	assert.Equal(t, 2, sc.IndexOf(a.ID))
	assert.Equal(t, 0, sc.IndexOf(b.ID))

	// out-of-range indexes clamp to the ends
	require.NoError(t, sc.Restack(a.ID, -5))
	assert.Equal(t, []NodeID{a.ID, b.ID, c.ID}, sc.Roots)
	require.NoError(t, sc.Restack(b.ID, 100))
	assert.Equal(t, []NodeID{a.ID, c.ID, b.ID}, sc.Roots)

	assert.ErrorIs(t, sc.Restack(99, 0), ErrNodeNotFound)
	assert.Equal(t, -1, sc.IndexOf(99))
	assertConsistent(t, sc)
}

func TestWalkDown(t *testing.T) {
	sc := NewScene()
	g := mustAdd(t, sc, &Node{Kind: Group, Name: "g"}, 0, -1)
	mustAdd(t, sc, &Node{Kind: Rect, Name: "r1"}, g.ID, -1)
	g2 := mustAdd(t, sc, &Node{Kind: Group, Name: "g2"}, g.ID, -1)
	mustAdd(t, sc, &Node{Kind: Rect, Name: "r2"}, g2.ID, -1)
	mustAdd(t, sc, &Node{Kind: Rect, Name: "top"}, 0, -1)

	var names []string
	sc.WalkDown(func(n *Node) bool {
		names = append(names, n.Name)
		return Continue
	})
	assert.Equal(t, []string{"g", "r1", "g2", "r2", "top"}, names)

	// Break prunes the branch below the node it returns from
	names = nil
	sc.WalkDown(func(n *Node) bool {
		names = append(names, n.Name)
		return n.Name != "g2"
	})
	assert.Equal(t, []string{"g", "r1", "g2", "top"}, names)

	order := sc.RenderOrder()
	require.Len(t, order, 5)
	assert.Equal(t, "g", order[0].Name)
	assert.Equal(t, "top", order[4].Name)
}

func TestFindName(t *testing.T) {
	sc := NewScene()
	g := mustAdd(t, sc, &Node{Kind: Group, Name: "layer"}, 0, -1)
	r := mustAdd(t, sc, &Node{Kind: Rect, Name: "hero"}, g.ID, -1)

	assert.Equal(t, r, sc.FindName("hero"))
	assert.Nil(t, sc.FindName("missing"))
}

func TestCloneTreeAddTree(t *testing.T) {
	sc := NewScene()
	g := mustAdd(t, sc, &Node{Kind: Group, Name: "g"}, 0, -1)
	r := mustAdd(t, sc, &Node{Kind: Rect, Name: "r", Pos: math32.Vec2(3, 4)}, g.ID, -1)
	r.Properties = map[string]any{"fill": "red"}

	list, err := sc.CloneTree(g.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotSame(t, g, list[0])
	assert.Equal(t, g.ID, list[0].ID)
	assert.Equal(t, r.ID, list[1].ID)

	// the clones are independent of the live nodes
	r.Properties["fill"] = "blue"
	assert.Equal(t, "red", list[1].Properties["fill"])

	require.NoError(t, sc.Remove(g.ID))
	assert.Equal(t, 0, sc.NumNodes())

	// re-adding the captured tree restores the same ids and links
	require.NoError(t, sc.AddTree(list, 0, -1))
	assert.Equal(t, 2, sc.NumNodes())
	assert.Equal(t, []NodeID{g.ID}, sc.Roots)
	rn := sc.Node(r.ID)
	require.NotNil(t, rn)
	assert.Equal(t, g.ID, rn.Parent)
	assert.Equal(t, math32.Vec2(3, 4), rn.Pos)
	assertConsistent(t, sc)

	// later ids never collide with restored ones
	nn := mustAdd(t, sc, &Node{Kind: Rect}, 0, -1)
	assert.Greater(t, nn.ID, r.ID)

	_, err = sc.CloneTree(99)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestAddTreeValidation(t *testing.T) {
	sc := NewScene()
	err := sc.AddTree([]*Node{
		{ID: 1, Kind: Group, Children: []NodeID{7}},
	}, 0, -1)
	assert.Error(t, err, "dangling child id")
	assert.Equal(t, 0, sc.NumNodes())

	err = sc.AddTree([]*Node{
		{ID: 1, Kind: Group, Children: []NodeID{2}},
		{Kind: Rect},
	}, 0, -1)
	assert.Error(t, err, "descendant without id")
	assert.Equal(t, 0, sc.NumNodes())
}

func BenchmarkWalkDown(b *testing.B) {
	sc := NewScene()
	for range 10 {
		g := &Node{Kind: Group}
		if err := sc.Add(g, 0, -1); err != nil {
			b.Fatal(err)
		}
		for range 100 {
			if err := sc.Add(&Node{Kind: Rect}, g.ID, -1); err != nil {
				b.Fatal(err)
			}
		}
	}
	b.ResetTimer()
	for range b.N {
		count := 0
		sc.WalkDown(func(n *Node) bool {
			count++
			return Continue
		})
	}
}
