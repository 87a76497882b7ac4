// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"fmt"
	"slices"

	"cogentcore.org/canvas/history"
	"cogentcore.org/canvas/scene"
	"cogentcore.org/canvas/selection"
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

var (
	// ErrEmptySelection indicates a group operation with no target
	// nodes.
	ErrEmptySelection = errors.New("canvas: nothing to group")

	// ErrCrossParentGroup indicates grouping nodes that do not all
	// share one parent.
	ErrCrossParentGroup = errors.New("canvas: grouped nodes must share one parent")

	// ErrNotAGroup indicates ungrouping a node that is not a group.
	ErrNotAGroup = errors.New("canvas: node is not a group")
)

// Group collects the nodes with the given ids, which must all share one
// parent, into a new group node as one undoable action, returning the
// group's id. The group is inserted at the lowest sibling index of its
// members with its geometry set to their combined bounding box; the
// members keep their relative z-order and nothing moves in the scene.
// The new group becomes the selection.
func (ed *Editor) Group(ids ...scene.NodeID) (scene.NodeID, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	members, parent, err := ed.groupMembers(ids)
	if err != nil {
		return 0, err
	}
	bb := math32.B2Empty()
	for _, id := range members {
		mb := ed.Scene.BBoxIn(id, parent)
		if mb.IsEmpty() {
			continue
		}
		bb.ExpandByBox(mb)
	}
	g := &scene.Node{Kind: scene.Group}
	if !bb.IsEmpty() {
		g.Pos = bb.Min
		g.Size = bb.Size()
	}
	index := ed.Scene.IndexOf(members[0])
	err = ed.transact("group", func() error {
		if err := ed.applyNew(history.NewAdd(ed.Scene, []*scene.Node{g}, parent, index)); err != nil {
			return err
		}
		for _, id := range members {
			if err := ed.applyNew(history.NewReparent(ed.Scene, id, g.ID, -1)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	ed.Selection.Select(selection.Replace, g.ID)
	return g.ID, nil
}

// GroupSelection groups the currently selected nodes; see
// [Editor.Group].
func (ed *Editor) GroupSelection() (scene.NodeID, error) {
	return ed.Group(ed.SelectedIDs()...)
}

// groupMembers validates and orders the target ids for [Editor.Group]:
// deduplicated, all present, all sharing one parent, and sorted by
// sibling index so relative z-order survives the move into the group.
func (ed *Editor) groupMembers(ids []scene.NodeID) ([]scene.NodeID, scene.NodeID, error) {
	var members []scene.NodeID
	seen := map[scene.NodeID]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}
	if len(members) == 0 {
		return nil, 0, ErrEmptySelection
	}
	n0, err := ed.Scene.NodeTry(members[0])
	if err != nil {
		return nil, 0, err
	}
	parent := n0.Parent
	for _, id := range members[1:] {
		n, err := ed.Scene.NodeTry(id)
		if err != nil {
			return nil, 0, err
		}
		if n.Parent != parent {
			return nil, 0, fmt.Errorf("%w: %d is under %d, not %d", ErrCrossParentGroup, id, n.Parent, parent)
		}
	}
	slices.SortFunc(members, func(a, b scene.NodeID) int {
		return ed.Scene.IndexOf(a) - ed.Scene.IndexOf(b)
	})
	return members, parent, nil
}

// Ungroup dissolves the group with the given id as one undoable action:
// its children move to the group's parent at the group's z-order slot,
// keeping their order, and with their geometry converted so nothing
// moves in the scene (a rotated group bakes its rotation into them).
// The now-empty group is removed, and the freed children become the
// selection. Returns the child ids.
func (ed *Editor) Ungroup(id scene.NodeID) ([]scene.NodeID, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	g, err := ed.Scene.NodeTry(id)
	if err != nil {
		return nil, err
	}
	if g.Kind != scene.Group {
		return nil, fmt.Errorf("%w: %d is %v", ErrNotAGroup, id, g.Kind)
	}
	parent := g.Parent
	gi := ed.Scene.IndexOf(id)
	kids := slices.Clone(g.Children)
	err = ed.transact("ungroup", func() error {
		for i, cid := range kids {
			if err := ed.applyNew(history.NewReparent(ed.Scene, cid, parent, gi+1+i)); err != nil {
				return err
			}
		}
		return ed.applyNew(history.NewRemove(ed.Scene, id))
	})
	if err != nil {
		return nil, err
	}
	ed.Selection.Select(selection.Replace, kids...)
	return kids, nil
}
