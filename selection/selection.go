// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selection maintains the set of currently selected nodes of a
// document: an ordered id set with selection modes for click, shift-click
// and toggle interactions, and a cached combined bounding box.
package selection

//go:generate core generate

import (
	"slices"

	"cogentcore.org/canvas/scene"
	"cogentcore.org/core/math32"
)

// Modes are the ways a [Selection.Select] call combines the given nodes
// with the current selection.
type Modes int32 //enums:enum

const (
	// Replace makes the given nodes the entire selection.
	Replace Modes = iota

	// Add adds the given nodes to the selection, keeping the rest.
	Add

	// Toggle flips the selected state of each given node.
	Toggle
)

// Selection is the ordered set of selected node ids of one document,
// in the order they were selected. Ids that leave the scene (removal,
// undo) are pruned; the set never invents or reorders ids on its own.
type Selection struct {

	// Scene is the document the selection refers into.
	Scene *scene.Scene

	ids  []scene.NodeID
	has  map[scene.NodeID]bool
	bbox math32.Box2
	ok   bool
}

// New returns a new empty selection on the given scene.
func New(sc *scene.Scene) *Selection {
	return &Selection{Scene: sc, has: map[scene.NodeID]bool{}}
}

// Select combines the given node ids with the current selection
// according to the given mode. Ids not present in the scene are
// ignored; duplicates are collapsed, keeping the first position.
func (s *Selection) Select(mode Modes, ids ...scene.NodeID) {
	s.Invalidate()
	if mode == Replace {
		s.clear()
	}
	for _, id := range ids {
		if !s.Scene.Has(id) {
			continue
		}
		switch {
		case mode == Toggle && s.has[id]:
			s.remove(id)
		case !s.has[id]:
			s.ids = append(s.ids, id)
			s.has[id] = true
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.Invalidate()
	s.clear()
}

func (s *Selection) clear() {
	s.ids = s.ids[:0]
	clear(s.has)
}

func (s *Selection) remove(id scene.NodeID) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
	delete(s.has, id)
}

// Has reports whether the node with the given id is selected.
func (s *Selection) Has(id scene.NodeID) bool {
	return s.has[id]
}

// Len returns the number of selected nodes.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []scene.NodeID {
	return slices.Clone(s.ids)
}

// BBox returns the combined scene-space bounding box of the selected
// nodes, and false if the selection is empty or has no finite bounds.
// The box is computed lazily and cached until the selection or the
// document changes.
func (s *Selection) BBox() (math32.Box2, bool) {
	if s.ok {
		return s.bbox, true
	}
	bb := math32.B2Empty()
	for _, id := range s.ids {
		nb := s.Scene.BBox(id)
		if nb.IsEmpty() {
			continue
		}
		bb.ExpandByBox(nb)
	}
	if bb.IsEmpty() {
		return bb, false
	}
	s.bbox = bb
	s.ok = true
	return bb, true
}

// Invalidate drops the cached bounding box. Sessions call this
// whenever the document changes; Select and Prune calls do it
// themselves.
func (s *Selection) Invalidate() {
	s.ok = false
}

// PruneInvalid drops all selected ids that are no longer in the scene,
// returning how many were dropped. It is called after undo, redo, and
// node removal, so stale selections never dangle.
func (s *Selection) PruneInvalid() int {
	dropped := 0
	for i := len(s.ids) - 1; i >= 0; i-- {
		id := s.ids[i]
		if s.Scene.Has(id) {
			continue
		}
		s.ids = slices.Delete(s.ids, i, i+1)
		delete(s.has, id)
		dropped++
	}
	if dropped > 0 {
		s.Invalidate()
	}
	return dropped
}
