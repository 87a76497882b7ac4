// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewport maps between the document's logical scene space and
// the device-oriented viewport space, and holds the per-session pan and
// zoom state in [Viewport]. Scene space is zoom and scroll independent;
// viewport space is scene space offset by the scroll position and then
// scaled by the zoom factor.
//
// Point arithmetic beyond the helpers here (add, lerp, distance) comes
// from [math32.Vector2] directly.
package viewport

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// ErrInvalidZoom is returned for zoom factors that are zero, negative,
// or not finite. Callers must clamp zoom to a valid range before use.
var ErrInvalidZoom = fmt.Errorf("viewport: invalid zoom factor")

// CheckZoom returns [ErrInvalidZoom] if the given zoom factor cannot be
// used for coordinate transforms (zero, negative, NaN, or infinite).
func CheckZoom(zoom float32) error {
	if !(zoom > 0) || math32.IsInf(zoom, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidZoom, zoom)
	}
	return nil
}

// SceneToViewport transforms a point from scene space to viewport space:
// the scroll offset is subtracted and the result is scaled by the zoom
// factor. It returns [ErrInvalidZoom] for invalid zoom factors.
func SceneToViewport(p math32.Vector2, zoom float32, scroll math32.Vector2) (math32.Vector2, error) {
	if err := CheckZoom(zoom); err != nil {
		return math32.Vector2{}, err
	}
	return p.Sub(scroll).MulScalar(zoom), nil
}

// ViewportToScene transforms a point from viewport space back to scene
// space. It is the exact inverse of [SceneToViewport]: the point is
// unscaled by the zoom factor and then the scroll offset is added.
// It returns [ErrInvalidZoom] for invalid zoom factors.
func ViewportToScene(p math32.Vector2, zoom float32, scroll math32.Vector2) (math32.Vector2, error) {
	if err := CheckZoom(zoom); err != nil {
		return math32.Vector2{}, err
	}
	return p.DivScalar(zoom).Add(scroll), nil
}

// ViewportToSceneRounded is [ViewportToScene] with the result rounded to
// the nearest whole scene unit, for pixel-snapped cursor placement.
func ViewportToSceneRounded(p math32.Vector2, zoom float32, scroll math32.Vector2) (math32.Vector2, error) {
	sp, err := ViewportToScene(p, zoom, scroll)
	if err != nil {
		return sp, err
	}
	return sp.Round(), nil
}

// SceneBoxToViewport transforms an axis-aligned scene-space box to
// viewport space, preserving axis alignment.
func SceneBoxToViewport(b math32.Box2, zoom float32, scroll math32.Vector2) (math32.Box2, error) {
	min, err := SceneToViewport(b.Min, zoom, scroll)
	if err != nil {
		return math32.Box2{}, err
	}
	max, err := SceneToViewport(b.Max, zoom, scroll)
	if err != nil {
		return math32.Box2{}, err
	}
	vb := math32.Box2{Min: min, Max: max}
	return vb.Canon(), nil
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b math32.Vector2) math32.Vector2 {
	return a.Add(b).MulScalar(0.5)
}

// PointsEqual reports whether a and b are equal within the given
// per-axis tolerance.
func PointsEqual(a, b math32.Vector2, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol && math32.Abs(a.Y-b.Y) <= tol
}
