// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"io"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/base/metadata"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// SnapshotVersion is the current snapshot format version, written into
// every snapshot.
const SnapshotVersion = "1"

// Snapshot is a complete serializable copy of a document: the flat
// list of nodes in walk order plus the document identity and the id
// counter, so that ids stay stable across save and load. Parent links
// are not serialized; they are rebuilt from the child lists on
// restore. Snapshots share no node state with the scene they came
// from; metadata values are copied shallowly (see [metadata.Data.Copy]).
type Snapshot struct {

	// Vsn is the snapshot format version.
	Vsn string

	// DocID is the document identifier.
	DocID uuid.UUID

	// Meta is the document metadata.
	Meta metadata.Data `json:",omitempty"`

	// NextID is the document's id counter, so that nodes added after a
	// load never collide with saved ids.
	NextID NodeID

	// Roots are the ids of the top-level nodes in ascending z-order.
	Roots []NodeID `json:",omitempty"`

	// Nodes are all nodes of the document in walk order.
	Nodes []*Node `json:",omitempty"`
}

// Snapshot returns a complete copy of the current document state.
// It is a pure read: the scene is not modified, and later edits to the
// scene do not affect the snapshot.
func (sc *Scene) Snapshot() *Snapshot {
	sn := &Snapshot{
		Vsn:    SnapshotVersion,
		DocID:  sc.DocID,
		NextID: sc.nextID,
		Roots:  slices.Clone(sc.Roots),
	}
	sn.Meta.Copy(sc.Meta)
	sc.WalkDown(func(n *Node) bool {
		sn.Nodes = append(sn.Nodes, CloneNode(n))
		return Continue
	})
	return sn
}

// Restore replaces the entire document state with the given snapshot,
// rebuilding parent links from the child lists. The scene keeps its
// registered observers but does not notify them; callers decide what a
// restore means for their change tracking. The snapshot is validated
// first and the scene is left unchanged on error.
func (sc *Scene) Restore(sn *Snapshot) error {
	nodes := make(map[NodeID]*Node, len(sn.Nodes))
	for _, n := range sn.Nodes {
		if n.ID == 0 {
			return fmt.Errorf("scene: snapshot node %q has no id", n.Name)
		}
		if nodes[n.ID] != nil {
			return fmt.Errorf("scene: snapshot has duplicate node id %d", n.ID)
		}
		nodes[n.ID] = CloneNode(n)
	}
	// rebuild parent backlinks and check referential integrity
	for _, n := range nodes {
		for _, cid := range n.Children {
			cn := nodes[cid]
			if cn == nil {
				return fmt.Errorf("scene: snapshot child id %d of node %d missing", cid, n.ID)
			}
			cn.Parent = n.ID
		}
	}
	for _, rid := range sn.Roots {
		if nodes[rid] == nil {
			return fmt.Errorf("scene: snapshot root id %d missing", rid)
		}
	}
	sc.DocID = sn.DocID
	sc.Meta = nil
	sc.Meta.Copy(sn.Meta)
	sc.Roots = slices.Clone(sn.Roots)
	sc.nodes = nodes
	sc.nextID = sn.NextID
	for id := range nodes {
		if id >= sc.nextID {
			sc.nextID = id + 1
		}
	}
	if sc.nextID == 0 {
		sc.nextID = 1
	}
	return nil
}

// WriteJSON writes the snapshot in JSON encoding to the given writer.
func (sn *Snapshot) WriteJSON(w io.Writer) error {
	return jsonx.WriteIndent(sn, w)
}

// ReadJSON reads the snapshot in JSON encoding from the given reader.
func (sn *Snapshot) ReadJSON(r io.Reader) error {
	return jsonx.Read(sn, r)
}

// SaveJSON saves the current document state to the given JSON file.
func (sc *Scene) SaveJSON(filename string) error {
	return jsonx.Save(sc.Snapshot(), filename)
}

// OpenJSON replaces the document state from the given JSON file.
func (sc *Scene) OpenJSON(filename string) error {
	sn := &Snapshot{}
	if err := jsonx.Open(sn, filename); err != nil {
		return err
	}
	return sc.Restore(sn)
}

// CloneNode returns a deep copy of the given node, including its
// properties map and child id list.
func CloneNode(n *Node) *Node {
	c := &Node{}
	errors.Log(copier.CopyWithOption(c, n, copier.Option{CaseSensitive: true, DeepCopy: true}))
	return c
}

// CloneTree returns deep copies of the node with the given id and all
// of its descendants, in walk order with the subtree root first, as
// accepted by [Scene.AddTree]. Parent and child links within the
// copies stay consistent.
func (sc *Scene) CloneTree(id NodeID) ([]*Node, error) {
	n, err := sc.NodeTry(id)
	if err != nil {
		return nil, err
	}
	var list []*Node
	sc.walkDown(n, func(cn *Node) bool {
		list = append(list, CloneNode(cn))
		return Continue
	})
	return list, nil
}
