// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"bytes"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/base/metadata"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotScene builds a small document with a group, properties, and
// metadata, exercising every serialized field.
func snapshotScene(t *testing.T) *Scene {
	t.Helper()
	sc := NewScene()
	sc.Meta.Set("Name", "fixture")
	g := mustAdd(t, sc, &Node{Kind: Group, Name: "layer"}, 0, -1)
	r := mustAdd(t, sc, &Node{Kind: Rect, Pos: math32.Vec2(10, 20), Size: math32.Vec2(30, 40)}, g.ID, -1)
	r.Properties = map[string]any{"fill": "red", "opacity": 0.5}
	mustAdd(t, sc, &Node{Kind: Text, Text: "hello", Rotation: 0.25}, g.ID, -1)
	mustAdd(t, sc, &Node{Kind: Image, Href: "cat.png"}, 0, -1)
	return sc
}

// assertSceneEqual compares two scenes structurally through their
// serialized snapshots.
func assertSceneEqual(t *testing.T, want, have *Scene) {
	t.Helper()
	wb, err := jsonx.WriteBytes(want.Snapshot())
	require.NoError(t, err)
	hb, err := jsonx.WriteBytes(have.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, string(wb), string(hb))
}

func TestSnapshotRestore(t *testing.T) {
	sc := snapshotScene(t)
	sn := sc.Snapshot()
	assert.Equal(t, SnapshotVersion, sn.Vsn)
	assert.Len(t, sn.Nodes, 4)

	// mutate the live scene, then restore
	require.NoError(t, sc.Remove(sc.Roots[0]))
	mustAdd(t, sc, &Node{Kind: Rect}, 0, -1)
	require.NoError(t, sc.Restore(sn))

	assert.Equal(t, 4, sc.NumNodes())
	name, err := metadata.GetFromData[string](sc.Meta, "Name")
	require.NoError(t, err)
	assert.Equal(t, "fixture", name)
	assertConsistent(t, sc)

	// parent links are rebuilt from the child lists
	layer := sc.FindName("layer")
	require.NotNil(t, layer)
	for _, cid := range layer.Children {
		assert.Equal(t, layer.ID, sc.Node(cid).Parent)
	}
}

func TestSnapshotIndependence(t *testing.T) {
	sc := snapshotScene(t)
	sn := sc.Snapshot()

	r := sc.FindName("rect-2")
	require.NotNil(t, r)
	r.Properties["fill"] = "green"
	r.Pos = math32.Vec2(999, 999)

	// the snapshot still holds the state at capture time
	var captured *Node
	for _, n := range sn.Nodes {
		if n.ID == r.ID {
			captured = n
		}
	}
	require.NotNil(t, captured)
	assert.Equal(t, "red", captured.Properties["fill"])
	assert.Equal(t, math32.Vec2(10, 20), captured.Pos)
}

func TestSnapshotIDsStable(t *testing.T) {
	sc := snapshotScene(t)
	sn := sc.Snapshot()

	sc2 := NewScene()
	require.NoError(t, sc2.Restore(sn))
	assert.Equal(t, sc.DocID, sc2.DocID)

	// ids allocated after a restore never collide with saved ones
	n := mustAdd(t, sc2, &Node{Kind: Rect}, 0, -1)
	for _, old := range sn.Nodes {
		assert.NotEqual(t, old.ID, n.ID)
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	sc := snapshotScene(t)
	sn := sc.Snapshot()

	var buf bytes.Buffer
	require.NoError(t, sn.WriteJSON(&buf))

	read := &Snapshot{}
	require.NoError(t, read.ReadJSON(bytes.NewReader(buf.Bytes())))

	sc2 := NewScene()
	require.NoError(t, sc2.Restore(read))
	assertSceneEqual(t, sc, sc2)
	assertConsistent(t, sc2)
}

func TestSaveOpenJSON(t *testing.T) {
	sc := snapshotScene(t)
	fname := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, sc.SaveJSON(fname))

	sc2 := NewScene()
	require.NoError(t, sc2.OpenJSON(fname))
	assertSceneEqual(t, sc, sc2)

	assert.Error(t, sc2.OpenJSON(filepath.Join(t.TempDir(), "missing.json")))
}

func TestRestoreValidation(t *testing.T) {
	sc := NewScene()
	mustAdd(t, sc, &Node{Kind: Rect, Name: "keep"}, 0, -1)

	bad := []*Snapshot{
		{Vsn: SnapshotVersion, Roots: []NodeID{1}, Nodes: []*Node{{ID: 1, Kind: Rect}, {ID: 1, Kind: Rect}}},
		{Vsn: SnapshotVersion, Roots: []NodeID{1}, Nodes: []*Node{{ID: 1, Kind: Group, Children: []NodeID{9}}}},
		{Vsn: SnapshotVersion, Roots: []NodeID{5}, Nodes: []*Node{{ID: 1, Kind: Rect}}},
		{Vsn: SnapshotVersion, Roots: []NodeID{1}, Nodes: []*Node{{Kind: Rect}}},
	}
	for i, sn := range bad {
		assert.Error(t, sc.Restore(sn), "case %d", i)
		// a failed restore leaves the scene untouched
		assert.NotNil(t, sc.FindName("keep"), "case %d", i)
	}
}

func TestCloneNode(t *testing.T) {
	n := &Node{
		ID:         3,
		Kind:       Rect,
		Name:       "orig",
		Pos:        math32.Vec2(1, 2),
		Properties: map[string]any{"stroke": "black"},
		Children:   []NodeID{7, 8},
	}
	c := CloneNode(n)
	assert.Equal(t, n, c)
	assert.NotSame(t, n, c)

	n.Properties["stroke"] = "white"
	n.Children[0] = 99
	assert.Equal(t, "black", c.Properties["stroke"])
	assert.Equal(t, NodeID(7), c.Children[0])
}
