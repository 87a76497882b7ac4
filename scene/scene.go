// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/metadata"
	"cogentcore.org/core/base/slicesx"
	"cogentcore.org/core/math32"
	"github.com/google/uuid"
)

var (
	// ErrNodeNotFound indicates an operation on a node id that is not
	// in the scene (possibly invalidated by an undo).
	ErrNodeNotFound = errors.New("scene: node not found")

	// ErrParentNotFound indicates an insertion under a parent id that
	// is not in the scene.
	ErrParentNotFound = errors.New("scene: parent not found")

	// ErrParentNotGroup indicates an insertion under a node that
	// cannot have children.
	ErrParentNotGroup = errors.New("scene: parent is not a group")

	// ErrCycleDetected indicates a reparent that would make a node its
	// own ancestor.
	ErrCycleDetected = errors.New("scene: reparent would create a cycle")
)

// Scene is one document: an arena of [Node]s indexed by id, plus the
// ordered list of root node ids. The scene exclusively owns its nodes.
//
// The primitive mutations here (Add, Remove, Reparent, Restack) adjust
// links only and are not undoable by themselves; document edits go
// through commands, which call them and capture reversal state.
// A scene must be confined to one goroutine; sessions that share a
// document with background work synchronize at their own boundary.
type Scene struct {

	// DocID uniquely identifies this document across sessions and saves.
	DocID uuid.UUID

	// Meta is optional document metadata, using the standard Name and
	// Doc keys.
	Meta metadata.Data

	// Roots are the ids of the top-level nodes in ascending z-order.
	Roots []NodeID

	nodes     map[NodeID]*Node
	nextID    NodeID
	observers []func(ch Change)
}

// NewScene returns a new empty document with a fresh document id.
func NewScene() *Scene {
	return &Scene{
		DocID:  uuid.New(),
		nodes:  map[NodeID]*Node{},
		nextID: 1,
	}
}

// AllocID allocates and returns the next unused node id.
func (sc *Scene) AllocID() NodeID {
	id := sc.nextID
	sc.nextID++
	return id
}

// Node returns the node with the given id, or nil if it is not in the
// scene.
func (sc *Scene) Node(id NodeID) *Node {
	return sc.nodes[id]
}

// NodeTry returns the node with the given id, or [ErrNodeNotFound].
func (sc *Scene) NodeTry(id NodeID) (*Node, error) {
	n := sc.nodes[id]
	if n == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNodeNotFound, id)
	}
	return n, nil
}

// Has reports whether the given id is in the scene.
func (sc *Scene) Has(id NodeID) bool {
	_, ok := sc.nodes[id]
	return ok
}

// NumNodes returns the total number of nodes in the scene.
func (sc *Scene) NumNodes() int {
	return len(sc.nodes)
}

// Add inserts the given childless node under the given parent at the
// given sibling index (see [Scene.AddTree] for index semantics),
// assigning an id if the node has none. Use parent 0 for a root node.
func (sc *Scene) Add(n *Node, parent NodeID, index int) error {
	if len(n.Children) > 0 {
		return fmt.Errorf("scene: Add requires a node without children; use AddTree")
	}
	return sc.AddTree([]*Node{n}, parent, index)
}

// AddTree inserts a captured subtree under the given parent at the
// given sibling index. list[0] is the subtree root; the remaining
// nodes must be its descendants with ids and parent/child links
// already consistent, as produced by [Scene.CloneTree]. A negative or
// out-of-range index appends, making the root the topmost sibling.
// Use parent 0 for a root node.
func (sc *Scene) AddTree(list []*Node, parent NodeID, index int) error {
	if len(list) == 0 {
		return nil
	}
	var pn *Node
	if parent != 0 {
		pn = sc.nodes[parent]
		if pn == nil {
			return fmt.Errorf("%w: id %d", ErrParentNotFound, parent)
		}
		if pn.Kind != Group {
			return fmt.Errorf("%w: id %d is %v", ErrParentNotGroup, parent, pn.Kind)
		}
	}
	root := list[0]
	if root.ID == 0 && len(list) == 1 {
		root.ID = sc.AllocID()
	}
	ids := make(map[NodeID]bool, len(list))
	for _, n := range list {
		if n.ID == 0 {
			return fmt.Errorf("scene: AddTree node %q has no id", n.Name)
		}
		if sc.Has(n.ID) || ids[n.ID] {
			return fmt.Errorf("scene: node id %d already in use", n.ID)
		}
		ids[n.ID] = true
	}
	for _, n := range list {
		for _, cid := range n.Children {
			if !ids[cid] {
				return fmt.Errorf("scene: AddTree child id %d of node %d not in tree", cid, n.ID)
			}
		}
	}
	for _, n := range list {
		sc.nodes[n.ID] = n
		if n.ID >= sc.nextID {
			sc.nextID = n.ID + 1
		}
		if n.Name == "" {
			n.Name = fmt.Sprintf("%v-%d", n.Kind, n.ID)
		}
	}
	root.Parent = parent
	if pn == nil {
		sc.Roots = insertID(sc.Roots, root.ID, index)
	} else {
		pn.Children = insertID(pn.Children, root.ID, index)
	}
	return nil
}

// Remove detaches the node with the given id from its parent and
// deletes it and its entire subtree from the scene, invalidating all
// of their ids. Returns [ErrNodeNotFound] if the id is not present.
func (sc *Scene) Remove(id NodeID) error {
	n, err := sc.NodeTry(id)
	if err != nil {
		return err
	}
	sc.detach(n)
	sc.deleteTree(n)
	return nil
}

// Reparent moves the node with the given id under a new parent at the
// given sibling index (negative or out of range appends). It adjusts
// links only; converting the node's geometry so that its absolute
// position is preserved is up to the caller. Moving a node under its
// own descendant fails with [ErrCycleDetected]. Use parent 0 to move
// the node to the root level.
func (sc *Scene) Reparent(id, parent NodeID, index int) error {
	n, err := sc.NodeTry(id)
	if err != nil {
		return err
	}
	var pn *Node
	if parent != 0 {
		pn = sc.nodes[parent]
		if pn == nil {
			return fmt.Errorf("%w: id %d", ErrParentNotFound, parent)
		}
		if pn.Kind != Group {
			return fmt.Errorf("%w: id %d is %v", ErrParentNotGroup, parent, pn.Kind)
		}
		for cur := pn; cur != nil; cur = sc.nodes[cur.Parent] {
			if cur.ID == id {
				return fmt.Errorf("%w: %d is an ancestor of %d", ErrCycleDetected, id, parent)
			}
		}
	}
	sc.detach(n)
	n.Parent = parent
	if pn == nil {
		sc.Roots = insertID(sc.Roots, id, index)
	} else {
		pn.Children = insertID(pn.Children, id, index)
	}
	return nil
}

// Restack moves the node with the given id to the given index within
// its sibling list, changing its z-order. Out-of-range indexes are
// clamped.
func (sc *Scene) Restack(id NodeID, index int) error {
	n, err := sc.NodeTry(id)
	if err != nil {
		return err
	}
	sibs := sc.siblings(n)
	from := slices.Index(sibs, id)
	index = math32.Clamp(index, 0, len(sibs)-1)
	if from == index {
		return nil
	}
	sibs = slicesx.Move(sibs, from, index)
	sc.setSiblings(n, sibs)
	return nil
}

// IndexOf returns the sibling index of the node with the given id
// (its z-order position), or -1 if the id is not in the scene.
func (sc *Scene) IndexOf(id NodeID) int {
	n := sc.nodes[id]
	if n == nil {
		return -1
	}
	return slices.Index(sc.siblings(n), id)
}

// FindName returns the first node with the given name in walk order,
// or nil if there is none.
func (sc *Scene) FindName(name string) *Node {
	var found *Node
	sc.WalkDown(func(n *Node) bool {
		if n.Name == name {
			found = n
			return Break
		}
		return Continue
	})
	return found
}

// siblings returns the sibling id list containing the given node.
func (sc *Scene) siblings(n *Node) []NodeID {
	if n.Parent == 0 {
		return sc.Roots
	}
	return sc.nodes[n.Parent].Children
}

func (sc *Scene) setSiblings(n *Node, sibs []NodeID) {
	if n.Parent == 0 {
		sc.Roots = sibs
	} else {
		sc.nodes[n.Parent].Children = sibs
	}
}

// detach removes the node from its sibling list and clears its parent.
func (sc *Scene) detach(n *Node) {
	if n.Parent == 0 {
		sc.Roots = deleteID(sc.Roots, n.ID)
	} else if pn := sc.nodes[n.Parent]; pn != nil {
		pn.Children = deleteID(pn.Children, n.ID)
	}
	n.Parent = 0
}

// deleteTree removes the node and all of its descendants from the
// arena.
func (sc *Scene) deleteTree(n *Node) {
	for _, cid := range n.Children {
		if cn := sc.nodes[cid]; cn != nil {
			sc.deleteTree(cn)
		}
	}
	delete(sc.nodes, n.ID)
}

func insertID(s []NodeID, id NodeID, i int) []NodeID {
	if i < 0 || i > len(s) {
		i = len(s)
	}
	return slices.Insert(s, i, id)
}

func deleteID(s []NodeID, id NodeID) []NodeID {
	if i := slices.Index(s, id); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}
