// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

const (
	// Continue = true can be returned from walk functions to continue
	// processing down the tree, as compared to Break = false which
	// stops this branch.
	Continue = true

	// Break = false can be returned from walk functions to stop
	// processing this branch of the tree.
	Break = false
)

// WalkDown calls the given function on every node in the scene,
// depth-first, parents before children, siblings in ascending z-order.
// Returning [Break] from the function skips that node's children;
// other branches continue. This visit order is the paint order.
func (sc *Scene) WalkDown(fun func(n *Node) bool) {
	for _, id := range sc.Roots {
		sc.walkDown(sc.nodes[id], fun)
	}
}

func (sc *Scene) walkDown(n *Node, fun func(n *Node) bool) {
	if n == nil || !fun(n) {
		return
	}
	for _, cid := range n.Children {
		sc.walkDown(sc.nodes[cid], fun)
	}
}

// RenderOrder returns all nodes flattened into paint order: the
// [Scene.WalkDown] order, back-to-front.
func (sc *Scene) RenderOrder() []*Node {
	order := make([]*Node, 0, len(sc.nodes))
	sc.WalkDown(func(n *Node) bool {
		order = append(order, n)
		return Continue
	})
	return order
}
