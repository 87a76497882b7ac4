// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package history

//go:generate core generate

import (
	"fmt"
	"slices"

	"cogentcore.org/canvas/scene"
	"cogentcore.org/core/math32"
)

// Ops are the primitive document edits a [Command] can perform.
type Ops int32 //enums:enum

const (
	// Add inserts a captured subtree into the scene.
	Add Ops = iota

	// Remove deletes a node and its subtree from the scene.
	Remove

	// Move translates nodes by a fixed offset.
	Move

	// Resize sets the size of a node.
	Resize

	// Rotate sets the rotation angle of a node.
	Rotate

	// SetProperty sets or deletes one property of a node.
	SetProperty

	// Reparent moves a node under a new parent, converting its local
	// geometry so that its position in the scene is preserved.
	Reparent

	// Restack moves a node within its sibling list, changing z-order.
	Restack
)

// Command is one primitive, reversible document edit. A command
// captures the prior state it needs at construction time, against the
// live scene, so that [Command.Undo] restores that state exactly
// instead of computing an approximate inverse. Construct commands with
// the New functions immediately before applying them through
// [History.Apply], while the captured state is still current.
type Command struct {

	// Op selects the edit this command performs and which of the fields
	// below are meaningful.
	Op Ops

	// ID is the target node for single-node operations; for Add and
	// Remove it is the subtree root.
	ID scene.NodeID

	// IDs are the target nodes for Move.
	IDs []scene.NodeID

	// Nodes is the captured subtree for Add and Remove, in walk order
	// with the root first. Apply and Undo insert clones of it, keeping
	// the capture pristine across undo and redo cycles.
	Nodes []*scene.Node

	// Parent and Index are the destination for Add and Reparent.
	Parent scene.NodeID
	Index  int

	// Delta is the Move offset, in parent coordinates.
	Delta math32.Vector2

	// Pos is the new local position for Reparent, computed so that the
	// node keeps its position in the scene.
	Pos math32.Vector2

	// Size is the new size for Resize.
	Size math32.Vector2

	// Rotation is the new angle for Rotate, and the converted local
	// angle for Reparent.
	Rotation float32

	// Key and Value are the property for SetProperty. A nil Value
	// deletes the key.
	Key   string
	Value any

	// prior state captured at construction
	OldPos      []math32.Vector2
	OldSize     math32.Vector2
	OldRotation float32
	OldParent   scene.NodeID
	OldIndex    int
	OldValue    any
	OldHas      bool
}

// NewAdd returns a command that inserts the given subtree under the
// given parent at the given sibling index (negative appends; parent 0
// inserts at the root level). list[0] is the subtree root; see
// [scene.Scene.AddTree] for the required form. Nodes without ids are
// assigned fresh ones immediately, so the caller can record them before
// the command is applied.
func NewAdd(sc *scene.Scene, list []*scene.Node, parent scene.NodeID, index int) (*Command, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("history: Add requires at least one node")
	}
	c := &Command{Op: Add, Parent: parent, Index: index}
	for _, n := range list {
		if n.ID == 0 {
			n.ID = sc.AllocID()
		}
		c.Nodes = append(c.Nodes, scene.CloneNode(n))
	}
	c.ID = c.Nodes[0].ID
	return c, nil
}

// NewRemove returns a command that removes the node with the given id
// and its entire subtree, capturing it for undo.
func NewRemove(sc *scene.Scene, id scene.NodeID) (*Command, error) {
	list, err := sc.CloneTree(id)
	if err != nil {
		return nil, err
	}
	return &Command{
		Op:        Remove,
		ID:        id,
		Nodes:     list,
		OldParent: list[0].Parent,
		OldIndex:  sc.IndexOf(id),
	}, nil
}

// NewMove returns a command that translates the nodes with the given
// ids by the given offset, in their respective parent coordinates.
func NewMove(sc *scene.Scene, delta math32.Vector2, ids ...scene.NodeID) (*Command, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("history: Move requires at least one node")
	}
	c := &Command{Op: Move, IDs: slices.Clone(ids), Delta: delta}
	for _, id := range ids {
		n, err := sc.NodeTry(id)
		if err != nil {
			return nil, err
		}
		c.OldPos = append(c.OldPos, n.Pos)
	}
	return c, nil
}

// NewResize returns a command that sets the size of the node with the
// given id. The position of the top-left corner is unchanged; pair with
// a Move in the same transaction for other resize anchors.
func NewResize(sc *scene.Scene, id scene.NodeID, size math32.Vector2) (*Command, error) {
	n, err := sc.NodeTry(id)
	if err != nil {
		return nil, err
	}
	return &Command{Op: Resize, ID: id, Size: size, OldSize: n.Size}, nil
}

// NewRotate returns a command that sets the rotation of the node with
// the given id, in radians about its center.
func NewRotate(sc *scene.Scene, id scene.NodeID, rotation float32) (*Command, error) {
	n, err := sc.NodeTry(id)
	if err != nil {
		return nil, err
	}
	return &Command{Op: Rotate, ID: id, Rotation: rotation, OldRotation: n.Rotation}, nil
}

// NewSetProperty returns a command that sets the given property of the
// node with the given id. A nil value deletes the property. Values must
// be JSON-representable (see [scene.Node.Properties]).
func NewSetProperty(sc *scene.Scene, id scene.NodeID, key string, value any) (*Command, error) {
	n, err := sc.NodeTry(id)
	if err != nil {
		return nil, err
	}
	c := &Command{Op: SetProperty, ID: id, Key: key, Value: value}
	c.OldValue, c.OldHas = n.Properties[key]
	return c, nil
}

// NewReparent returns a command that moves the node with the given id
// under a new parent at the given sibling index (negative appends;
// parent 0 moves it to the root level). The node's local position and
// rotation are converted so that its absolute position and angle in the
// scene do not change.
func NewReparent(sc *scene.Scene, id, parent scene.NodeID, index int) (*Command, error) {
	n, err := sc.NodeTry(id)
	if err != nil {
		return nil, err
	}
	half := n.Size.MulScalar(0.5)
	ctr := sc.SceneTransform(id).MulPoint(half)
	if parent != 0 {
		if _, err := sc.NodeTry(parent); err != nil {
			return nil, err
		}
		ctr = sc.SceneTransform(parent).Inverse().MulPoint(ctr)
	}
	return &Command{
		Op:          Reparent,
		ID:          id,
		Parent:      parent,
		Index:       index,
		Pos:         ctr.Sub(half),
		Rotation:    sc.SceneRotation(id) - sc.SceneRotation(parent),
		OldParent:   n.Parent,
		OldIndex:    sc.IndexOf(id),
		OldPos:      []math32.Vector2{n.Pos},
		OldRotation: n.Rotation,
	}, nil
}

// NewRestack returns a command that moves the node with the given id to
// the given index within its sibling list, changing its z-order.
// Out-of-range indexes are clamped.
func NewRestack(sc *scene.Scene, id scene.NodeID, index int) (*Command, error) {
	if _, err := sc.NodeTry(id); err != nil {
		return nil, err
	}
	return &Command{Op: Restack, ID: id, Index: index, OldIndex: sc.IndexOf(id)}, nil
}

// Apply performs the edit on the given scene, which must be in the
// state the command was constructed against (or restored to it by
// undo).
func (c *Command) Apply(sc *scene.Scene) error {
	switch c.Op {
	case Add:
		return sc.AddTree(cloneList(c.Nodes), c.Parent, c.Index)
	case Remove:
		return sc.Remove(c.ID)
	case Move:
		for i, id := range c.IDs {
			n, err := sc.NodeTry(id)
			if err != nil {
				return err
			}
			n.Pos = c.OldPos[i].Add(c.Delta)
		}
		return nil
	case Resize:
		n, err := sc.NodeTry(c.ID)
		if err != nil {
			return err
		}
		n.Size = c.Size
		return nil
	case Rotate:
		n, err := sc.NodeTry(c.ID)
		if err != nil {
			return err
		}
		n.Rotation = c.Rotation
		return nil
	case SetProperty:
		n, err := sc.NodeTry(c.ID)
		if err != nil {
			return err
		}
		if c.Value == nil {
			delete(n.Properties, c.Key)
			return nil
		}
		if n.Properties == nil {
			n.Properties = map[string]any{}
		}
		n.Properties[c.Key] = c.Value
		return nil
	case Reparent:
		if err := sc.Reparent(c.ID, c.Parent, c.Index); err != nil {
			return err
		}
		n := sc.Node(c.ID)
		n.Pos = c.Pos
		n.Rotation = c.Rotation
		return nil
	case Restack:
		return sc.Restack(c.ID, c.Index)
	}
	return fmt.Errorf("history: unknown op %v", c.Op)
}

// Undo reverses the edit on the given scene, restoring the state
// captured at construction.
func (c *Command) Undo(sc *scene.Scene) error {
	switch c.Op {
	case Add:
		return sc.Remove(c.ID)
	case Remove:
		return sc.AddTree(cloneList(c.Nodes), c.OldParent, c.OldIndex)
	case Move:
		for i, id := range c.IDs {
			n, err := sc.NodeTry(id)
			if err != nil {
				return err
			}
			n.Pos = c.OldPos[i]
		}
		return nil
	case Resize:
		n, err := sc.NodeTry(c.ID)
		if err != nil {
			return err
		}
		n.Size = c.OldSize
		return nil
	case Rotate:
		n, err := sc.NodeTry(c.ID)
		if err != nil {
			return err
		}
		n.Rotation = c.OldRotation
		return nil
	case SetProperty:
		n, err := sc.NodeTry(c.ID)
		if err != nil {
			return err
		}
		if !c.OldHas {
			delete(n.Properties, c.Key)
			return nil
		}
		if n.Properties == nil {
			n.Properties = map[string]any{}
		}
		n.Properties[c.Key] = c.OldValue
		return nil
	case Reparent:
		if err := sc.Reparent(c.ID, c.OldParent, c.OldIndex); err != nil {
			return err
		}
		n := sc.Node(c.ID)
		n.Pos = c.OldPos[0]
		n.Rotation = c.OldRotation
		return nil
	case Restack:
		return sc.Restack(c.ID, c.OldIndex)
	}
	return fmt.Errorf("history: unknown op %v", c.Op)
}

// Targets returns the ids of the nodes this command edits, for change
// notification. For Add and Remove this is the subtree root only.
func (c *Command) Targets() []scene.NodeID {
	if c.Op == Move {
		return c.IDs
	}
	return []scene.NodeID{c.ID}
}

// cloneList returns deep copies of the given captured nodes, for
// inserting into a scene without aliasing the capture.
func cloneList(list []*scene.Node) []*scene.Node {
	cl := make([]*scene.Node, len(list))
	for i, n := range list {
		cl[i] = scene.CloneNode(n)
	}
	return cl
}
