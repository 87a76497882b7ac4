// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements the document model of the vector editor:
// a hierarchy of shape nodes (rectangles, groups, text, images) stored
// in an id-indexed arena owned by [Scene]. Nodes reference each other
// by id only, so removing a subtree invalidates all references to it
// at once, and snapshots serialize to a flat node list.
//
// The scene intentionally has no undo or selection logic of its own:
// all mutations are driven through commands (see the history package),
// which use the primitive operations here and capture the state needed
// to reverse them.
package scene

//go:generate core generate

import (
	"cogentcore.org/core/math32"
)

// NodeID is the stable, document-unique identifier of a [Node].
// Ids are allocated from a per-document counter, never reused within a
// document, and preserved across save and load. 0 is never a valid node
// id; it denotes the scene root when used as a parent.
type NodeID uint64

// Kinds are the variants of [Node]. The kind determines how the
// geometry and content fields of the node are interpreted.
type Kinds int32 //enums:enum

const (
	// Rect is an axis-aligned rectangle shape.
	Rect Kinds = iota

	// Group is a container of child nodes. Its effective bounding box
	// is the union of its children, and its transform compounds with
	// theirs.
	Group

	// Text is a text shape; the content is in [Node.Text].
	Text

	// Image is an image shape; the reference is in [Node.Href].
	Image
)

// Node is one element of the scene graph, a tagged variant shared by
// all node kinds. Nodes are exclusively owned by a [Scene]: create them
// with plain struct literals, but add, remove, and move them only
// through commands so that every mutation is undoable.
type Node struct {

	// ID is the stable document-unique identifier of this node,
	// assigned by the scene when the node is added.
	ID NodeID

	// Kind is the variant of this node.
	Kind Kinds

	// Name is the user-visible name. Nodes added without a name get
	// one derived from their kind and id.
	Name string `json:",omitempty"`

	// Pos is the position of the node's top-left corner, in the
	// coordinates of its parent.
	Pos math32.Vector2

	// Size is the width and height of the node in its own coordinates.
	// For groups it records the extent at creation time; the effective
	// bounds of a group always derive from its children.
	Size math32.Vector2

	// Rotation is the rotation angle in radians, about the center of
	// the node.
	Rotation float32 `json:",omitempty"`

	// Properties holds styling and tool data opaque to the document
	// engine (fill, stroke, opacity, etc). Values must be
	// JSON-representable for snapshots to round-trip exactly.
	Properties map[string]any `json:",omitempty"`

	// Text is the text content, for Text nodes.
	Text string `json:",omitempty"`

	// Href is the image reference, for Image nodes.
	Href string `json:",omitempty"`

	// Parent is the id of the parent group, or 0 for root nodes.
	// It is rebuilt from Children on load.
	Parent NodeID `json:"-"`

	// Children are the child ids in ascending z-order (earlier paints
	// first). Only Group nodes have children.
	Children []NodeID `json:",omitempty"`
}

// Center returns the center point of the node in parent coordinates,
// which is the fixed point of its rotation.
func (n *Node) Center() math32.Vector2 {
	return n.Pos.Add(n.Size.MulScalar(0.5))
}

// LocalTransform returns the transform from the node's own coordinates
// into the coordinates of its parent: a translation to Pos composed
// with the rotation about the node center.
func (n *Node) LocalTransform() math32.Matrix2 {
	if n.Rotation == 0 {
		return math32.Translate2D(n.Pos.X, n.Pos.Y)
	}
	ctr := n.Center()
	return math32.Translate2D(ctr.X, ctr.Y).
		Mul(math32.Rotate2D(n.Rotation)).
		Mul(math32.Translate2D(-0.5*n.Size.X, -0.5*n.Size.Y))
}
