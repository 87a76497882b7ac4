// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestViewportDefaults(t *testing.T) {
	vp := New()
	assert.Equal(t, float32(1), vp.Zoom)
	assert.Equal(t, math32.Vector2{}, vp.Scroll)
	assert.Equal(t, math32.Vec2(3, 4), vp.SceneToViewport(math32.Vec2(3, 4)))
}

func TestViewportSetGeom(t *testing.T) {
	vp := New()
	vp.SetGeom(10, 20, 800, 600)
	assert.Equal(t, math32.Vec2(10, 20), vp.Scroll)
	assert.Equal(t, math32.Vec2(800, 600), vp.Size)
}

func TestViewportZoom(t *testing.T) {
	vp := New()
	assert.NoError(t, vp.SetZoom(2))
	assert.Equal(t, float32(2), vp.Zoom)

	assert.NoError(t, vp.ZoomBy(2))
	assert.Equal(t, float32(4), vp.Zoom)

	// invalid factors leave the state unchanged
	assert.ErrorIs(t, vp.SetZoom(0), ErrInvalidZoom)
	assert.ErrorIs(t, vp.SetZoom(-3), ErrInvalidZoom)
	assert.ErrorIs(t, vp.ZoomBy(0), ErrInvalidZoom)
	assert.Equal(t, float32(4), vp.Zoom)
}

func TestViewportZoomAt(t *testing.T) {
	vp := New()
	vp.SetScroll(math32.Vec2(10, 10))
	assert.NoError(t, vp.SetZoom(2))

	// the scene point under the anchor stays fixed across the zoom
	anchor := math32.Vec2(100, 60)
	before := vp.ViewportToScene(anchor)
	assert.NoError(t, vp.ZoomAt(anchor, 1.5))
	after := vp.ViewportToScene(anchor)
	tolAssertEqualVector(t, 1.0e-4, before, after)
	assert.Equal(t, float32(3), vp.Zoom)

	assert.ErrorIs(t, vp.ZoomAt(anchor, 0), ErrInvalidZoom)
}

func TestViewportScroll(t *testing.T) {
	vp := New()
	vp.SetScroll(math32.Vec2(5, 5))
	vp.ScrollBy(math32.Vec2(-2, 3))
	assert.Equal(t, math32.Vec2(3, 8), vp.Scroll)

	assert.Equal(t, math32.Vec2(0, 0), vp.SceneToViewport(math32.Vec2(3, 8)))
	assert.Equal(t, math32.Vec2(3, 8), vp.ViewportToScene(math32.Vector2{}))
	assert.Equal(t, math32.Vec2(4, 9), vp.ViewportToSceneRounded(math32.Vec2(1.2, 0.8)))
}

func TestVisibleBox(t *testing.T) {
	vp := New()
	vp.SetGeom(100, 50, 800, 600)
	assert.NoError(t, vp.SetZoom(2))
	assert.Equal(t, math32.B2(100, 50, 500, 350), vp.VisibleBox())
}
