// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

// Viewport is the pan and zoom state of one editing session. It is
// reset when a document is loaded and torn down with the session.
// The setters keep the state valid, so the transform methods never fail;
// mutate the state only through them.
type Viewport struct {

	// Scroll is the scene-space point currently at the viewport origin.
	Scroll math32.Vector2

	// Size is the size of the viewport in device units.
	Size math32.Vector2

	// Zoom is the scene-to-viewport scale factor, always > 0.
	Zoom float32
}

// New returns a new [Viewport] with default state (zoom 1, no scroll).
func New() *Viewport {
	vp := &Viewport{}
	vp.Defaults()
	return vp
}

// Defaults resets the viewport to its initial state.
func (vp *Viewport) Defaults() {
	vp.Scroll = math32.Vector2{}
	vp.Size = math32.Vector2{}
	vp.Zoom = 1
}

// SetGeom sets the scroll position to (x, y) and the viewport size
// to (w, h), as one call for hosts that track window geometry.
func (vp *Viewport) SetGeom(x, y, w, h float32) {
	vp.Scroll = math32.Vec2(x, y)
	vp.Size = math32.Vec2(w, h)
}

// SetScroll sets the scroll position.
func (vp *Viewport) SetScroll(p math32.Vector2) {
	vp.Scroll = p
}

// ScrollBy shifts the scroll position by the given scene-space delta.
func (vp *Viewport) ScrollBy(d math32.Vector2) {
	vp.Scroll = vp.Scroll.Add(d)
}

// SetZoom sets the zoom factor, returning [ErrInvalidZoom] and leaving
// the state unchanged if the factor is not usable.
func (vp *Viewport) SetZoom(zoom float32) error {
	if err := CheckZoom(zoom); err != nil {
		return err
	}
	vp.Zoom = zoom
	return nil
}

// ZoomBy multiplies the current zoom factor by the given multiplier,
// returning [ErrInvalidZoom] and leaving the state unchanged if the
// resulting factor is not usable.
func (vp *Viewport) ZoomBy(factor float32) error {
	return vp.SetZoom(vp.Zoom * factor)
}

// ZoomAt multiplies the zoom factor by the given multiplier while
// keeping the scene point under the given viewport point stationary,
// for zooming at the cursor. It adjusts the scroll position accordingly.
func (vp *Viewport) ZoomAt(p math32.Vector2, factor float32) error {
	nz := vp.Zoom * factor
	if err := CheckZoom(nz); err != nil {
		return err
	}
	vp.Scroll = vp.Scroll.Add(p.DivScalar(vp.Zoom)).Sub(p.DivScalar(nz))
	vp.Zoom = nz
	return nil
}

// SceneToViewport transforms a point from scene space to viewport space
// using the current zoom and scroll state.
func (vp *Viewport) SceneToViewport(p math32.Vector2) math32.Vector2 {
	return errors.Log1(SceneToViewport(p, vp.Zoom, vp.Scroll))
}

// ViewportToScene transforms a point from viewport space to scene space
// using the current zoom and scroll state.
func (vp *Viewport) ViewportToScene(p math32.Vector2) math32.Vector2 {
	return errors.Log1(ViewportToScene(p, vp.Zoom, vp.Scroll))
}

// ViewportToSceneRounded is [Viewport.ViewportToScene] with the result
// rounded to the nearest whole scene unit.
func (vp *Viewport) ViewportToSceneRounded(p math32.Vector2) math32.Vector2 {
	return errors.Log1(ViewportToSceneRounded(p, vp.Zoom, vp.Scroll))
}

// VisibleBox returns the scene-space region currently visible in the
// viewport, for render culling.
func (vp *Viewport) VisibleBox() math32.Box2 {
	return math32.Box2{Min: vp.Scroll, Max: vp.Scroll.Add(vp.Size.DivScalar(vp.Zoom))}
}
