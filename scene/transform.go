// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/core/math32"

// SceneTransform returns the transform from the node's own coordinates
// into scene coordinates, compounding the local transforms of all of
// its ancestors. It returns the identity for ids not in the scene.
func (sc *Scene) SceneTransform(id NodeID) math32.Matrix2 {
	n := sc.nodes[id]
	if n == nil {
		return math32.Identity2()
	}
	xf := n.LocalTransform()
	for pn := sc.nodes[n.Parent]; pn != nil; pn = sc.nodes[pn.Parent] {
		xf = pn.LocalTransform().Mul(xf)
	}
	return xf
}

// SceneRotation returns the absolute rotation of the node in scene
// space: the sum of its own rotation and those of its ancestors.
func (sc *Scene) SceneRotation(id NodeID) float32 {
	var rot float32
	for n := sc.nodes[id]; n != nil; n = sc.nodes[n.Parent] {
		rot += n.Rotation
	}
	return rot
}

// RelativeTransform returns the transform from the node's own
// coordinates into the coordinates of the given base node.
// Base 0 is scene space, equivalent to [Scene.SceneTransform].
func (sc *Scene) RelativeTransform(id, base NodeID) math32.Matrix2 {
	xf := sc.SceneTransform(id)
	if base == 0 {
		return xf
	}
	return sc.SceneTransform(base).Inverse().Mul(xf)
}

// BBox returns the axis-aligned bounding box of the node in scene
// coordinates. For groups this is the union of the child boxes, so an
// empty group yields an empty box (see [math32.Box2.IsEmpty]).
func (sc *Scene) BBox(id NodeID) math32.Box2 {
	return sc.BBoxIn(id, 0)
}

// BBoxIn returns the axis-aligned bounding box of the node in the
// coordinates of the given base node (0 = scene space).
func (sc *Scene) BBoxIn(id, base NodeID) math32.Box2 {
	n := sc.nodes[id]
	if n == nil {
		return math32.B2Empty()
	}
	if n.Kind == Group {
		bb := math32.B2Empty()
		for _, cid := range n.Children {
			cb := sc.BBoxIn(cid, base)
			if cb.IsEmpty() {
				continue
			}
			bb.ExpandByBox(cb)
		}
		return bb
	}
	xf := sc.RelativeTransform(id, base)
	return math32.B2(0, 0, n.Size.X, n.Size.Y).MulMatrix2(xf)
}
